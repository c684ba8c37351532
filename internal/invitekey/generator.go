// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package invitekey

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/MKhiriev/go-subs-directory/internal/config"
	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/metrics"
)

// Alphabet is the set of symbols a key is drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	DefaultLength      = 12
	DefaultMaxAttempts = 100_000
)

var (
	// ErrAttemptsExhausted is returned when every candidate collided.
	ErrAttemptsExhausted = errors.New("invite key attempts exhausted")
	// ErrCheckingKey wraps failures of the ExistenceChecker.
	ErrCheckingKey = errors.New("error checking invite key existence")
)

// ExistenceChecker reports whether some user already owns key.
type ExistenceChecker interface {
	InviteKeyExists(ctx context.Context, key string) (bool, error)
}

// Source returns a pseudo-random index in [0, n).
type Source func(n int) int

// Generator hands out invite keys that are free at the time of the check.
type Generator struct {
	checker     ExistenceChecker
	length      int
	maxAttempts int
	source      Source
	logger      *logger.Logger
}

// Option customises a Generator.
type Option func(*Generator)

// WithSource replaces the random source. Tests use it to force collisions.
func WithSource(source Source) Option {
	return func(g *Generator) {
		g.source = source
	}
}

// NewGenerator builds a Generator backed by checker. Zero values in cfg
// fall back to DefaultLength and DefaultMaxAttempts.
func NewGenerator(checker ExistenceChecker, cfg config.InviteKey, log *logger.Logger, opts ...Option) *Generator {
	g := &Generator{
		checker:     checker,
		length:      cfg.Length,
		maxAttempts: cfg.MaxAttempts,
		source:      rand.IntN,
		logger:      log,
	}
	if g.length <= 0 {
		g.length = DefaultLength
	}
	if g.maxAttempts <= 0 {
		g.maxAttempts = DefaultMaxAttempts
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate returns a key no user owned when it was checked.
//
// A checker error aborts generation. A cancelled ctx stops the loop between
// attempts.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := g.draw()

		exists, err := g.checker.InviteKeyExists(ctx, candidate)
		if err != nil {
			log.Err(err).Str("func", "invitekey.Generate").Msg("error checking invite key")
			return "", fmt.Errorf("%w: %w", ErrCheckingKey, err)
		}
		if !exists {
			metrics.InviteKeysGenerated.Inc()
			return candidate, nil
		}

		metrics.InviteKeyCollisions.Inc()
		log.Debug().
			Str("func", "invitekey.Generate").
			Int("attempt", attempt).
			Msg("invite key collision, retrying")
	}

	metrics.InviteKeyExhausted.Inc()
	g.logger.Error().
		Str("func", "invitekey.Generate").
		Int("max_attempts", g.maxAttempts).
		Msg("no free invite key found")

	return "", ErrAttemptsExhausted
}

func (g *Generator) draw() string {
	key := make([]byte, g.length)
	for i := range key {
		key[i] = Alphabet[g.source(len(Alphabet))]
	}
	return string(key)
}
