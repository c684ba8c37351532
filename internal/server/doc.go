// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the directory HTTP server.
//
// It owns the listener lifecycle: startup, SIGTERM/SIGINT/SIGQUIT handling
// and graceful shutdown bounded by the configured shutdown timeout.
package server
