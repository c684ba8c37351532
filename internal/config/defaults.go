// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	// DefaultPort is used when neither SERVER_ADDRESS nor PORT is set.
	DefaultPort = "3001"

	// MemoryDSN selects the in-memory store instead of PostgreSQL.
	MemoryDSN = "memory://"

	defaultLogLevel              = "debug"
	defaultInviteKeyLength       = 12
	defaultInviteKeyMaxAttempts  = 100_000
	defaultDBConnectTimeout      = 30 * time.Second
	defaultServerShutdownTimeout = 10 * time.Second
	defaultStatsInterval         = time.Minute
)

// defaults returns the lowest priority configuration layer.
//
// Server.HTTPAddress is deliberately left empty: it is derived from PORT
// in [StructuredConfig.applyAddress] after all layers are merged.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: defaultLogLevel,
			InviteKey: InviteKey{
				Length:      defaultInviteKeyLength,
				MaxAttempts: defaultInviteKeyMaxAttempts,
			},
		},
		Storage: Storage{
			DB: DB{
				ConnectTimeout: defaultDBConnectTimeout,
			},
		},
		Server: Server{
			ShutdownTimeout: defaultServerShutdownTimeout,
		},
		Workers: Workers{
			StatsInterval: defaultStatsInterval,
		},
	}
}

// applyAddress fills Server.HTTPAddress from Port (or [DefaultPort]) when no
// source provided an explicit address.
func (cfg *StructuredConfig) applyAddress() {
	if cfg.Server.HTTPAddress != "" {
		return
	}

	port := cfg.Port
	if port == "" {
		port = DefaultPort
	}

	cfg.Server.HTTPAddress = ":" + port
}
