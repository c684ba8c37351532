// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a child logger carrying trace_id to the request
// context. An incoming X-Trace-ID is reused, otherwise a new UUID is issued.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}

// withLogging writes one access line per request.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		logger.FromRequest(r).Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", rec.statusOrOK()).
			Dur("duration", time.Since(start)).
			Int("size", rec.size).
			Send()
	})
}

// withCORS allows any origin. Preflight requests are answered here and never
// reach the router.
var withCORS = cors.Handler(cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
	AllowedHeaders: []string{"Accept", "Content-Type", traceIDHeader},
	ExposedHeaders: []string{traceIDHeader},
	MaxAge:         300,
})

// withTimeoutReply turns the bare 504 written by middleware.Timeout into a
// JSON error. It must wrap middleware.Timeout.
func withTimeoutReply(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(&timeoutReplyWriter{ResponseWriter: w, r: r}, r)
	})
}

type timeoutReplyWriter struct {
	http.ResponseWriter

	r     *http.Request
	wrote bool
}

func (tw *timeoutReplyWriter) WriteHeader(statusCode int) {
	if !tw.wrote && statusCode == http.StatusGatewayTimeout {
		tw.wrote = true
		writeReply(tw.ResponseWriter, tw.r, errorReply{http.StatusGatewayTimeout, msgTimeout})
		return
	}
	tw.wrote = true
	tw.ResponseWriter.WriteHeader(statusCode)
}

func (tw *timeoutReplyWriter) Write(b []byte) (int, error) {
	tw.wrote = true
	return tw.ResponseWriter.Write(b)
}

func (tw *timeoutReplyWriter) Unwrap() http.ResponseWriter {
	return tw.ResponseWriter
}

// statusRecorder remembers the status code and body size written downstream.
type statusRecorder struct {
	http.ResponseWriter

	status int
	size   int
}

func (s *statusRecorder) WriteHeader(statusCode int) {
	if s.status != 0 {
		return
	}
	s.status = statusCode
	s.ResponseWriter.WriteHeader(statusCode)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.WriteHeader(http.StatusOK)
	}
	n, err := s.ResponseWriter.Write(b)
	s.size += n
	return n, err
}

func (s *statusRecorder) statusOrOK() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
