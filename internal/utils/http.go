// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared by the HTTP layer and the
// storage layer: JSON response writing, request body decoding and user id
// generation.
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrEmptyBody is returned by DecodeJSON when the request carries no body.
var ErrEmptyBody = errors.New("request body is empty")

// WriteJSON serializes data to JSON and writes it with the given status code.
//
// The "Content-Type" header is set to "application/json" before the status
// is written. If marshaling fails the client gets a 500 with a plain-text
// body and the marshaling error is returned wrapped.
//
// Example usage:
//
//	WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
//	WriteJSON(w, models.ErrorResponse{Error: "User not found"}, http.StatusNotFound)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// DecodeJSON decodes the request body into dst.
// Unknown fields are accepted; trailing garbage after the first JSON value
// is not.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("error decoding request body: %w", err)
	}

	if decoder.More() {
		return errors.New("error decoding request body: unexpected data after JSON value")
	}

	return nil
}
