// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Field rules live in `validate` struct tags. Failures are reported as one
// of the sentinel errors from errors.go, wrapping the validator message.
func (cfg *StructuredConfig) validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("listen_address", listenAddress(v)); err != nil {
		return fmt.Errorf("error registering config validators: %w", err)
	}

	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("error validating config: %w", err)
	}

	errs := make([]error, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		errs = append(errs, fmt.Errorf("%w: %s failed on '%s'", sectionError(fieldErr.StructNamespace()), fieldErr.StructNamespace(), fieldErr.Tag()))
	}

	return errors.Join(errs...)
}

// sectionError maps a validator namespace like "StructuredConfig.Storage.DB.DSN"
// to the sentinel error of its configuration group.
func sectionError(namespace string) error {
	switch {
	case hasSection(namespace, "Storage"):
		return ErrInvalidStorageConfigs
	case hasSection(namespace, "Server"), hasSection(namespace, "Port"):
		return ErrInvalidServerConfigs
	case hasSection(namespace, "Workers"):
		return ErrInvalidWorkerConfigs
	default:
		return ErrInvalidAppConfigs
	}
}

func hasSection(namespace, section string) bool {
	return strings.HasPrefix(namespace, "StructuredConfig."+section)
}

// listenAddress accepts "host:port" where host is empty, an IPv4/IPv6
// literal (bracketed in the address) or an RFC 1123 hostname.
func listenAddress(v *validator.Validate) validator.Func {
	return func(fl validator.FieldLevel) bool {
		host, port, err := net.SplitHostPort(fl.Field().String())
		if err != nil {
			return false
		}

		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return false
		}

		if host == "" || net.ParseIP(host) != nil {
			return true
		}
		return v.Var(host, "hostname_rfc1123") == nil
	}
}
