// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-subs-directory/internal/config"
	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewHandlers_HTTPAddress verifies that a configured address yields an
// HTTP handler. The services pointer is only stored, so nil is fine here.
func TestNewHandlers_HTTPAddress(t *testing.T) {
	cfg := config.Server{HTTPAddress: ":3001", RequestTimeout: time.Second}

	h, err := NewHandlers((*service.Services)(nil), cfg, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP)
}

// TestNewHandlers_NoAddress verifies that a config without an address is
// rejected.
func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(nil, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

func TestNewHandlers_ReturnsIndependentInstances(t *testing.T) {
	cfg := config.Server{HTTPAddress: ":3001"}

	h1, err := NewHandlers(nil, cfg, logger.Nop())
	require.NoError(t, err)
	h2, err := NewHandlers(nil, cfg, logger.Nop())
	require.NoError(t, err)

	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
}
