// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/service"
	"github.com/MKhiriev/go-subs-directory/internal/utils"
	"github.com/MKhiriev/go-subs-directory/models"
)

const (
	msgInvalidJSON      = "invalid JSON was passed"
	msgInternalServer   = "internal server error"
	msgRouteNotFound    = "route not found"
	msgMethodNotAllowed = "method not allowed"
	msgTimeout          = "request timed out"
)

type errorReply struct {
	status  int
	message string
}

var errorReplies = map[error]errorReply{
	service.ErrUserNotFound:      {http.StatusNotFound, "User not found"},
	service.ErrAlreadySubscribed: {http.StatusBadRequest, "Already subscribed"},
	service.ErrKeySpaceExhausted: {http.StatusServiceUnavailable, "could not allocate invite key"},
}

// replyFromError falls back to 500 for anything it does not recognize,
// store failures included.
func replyFromError(err error) errorReply {
	for target, reply := range errorReplies {
		if errors.Is(err, target) {
			return reply
		}
	}
	return errorReply{http.StatusInternalServerError, msgInternalServer}
}

func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	log := logger.FromRequest(r)

	reply := replyFromError(err)
	if reply.status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Int("status", reply.status).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", fn).Int("status", reply.status).Msg("request rejected")
	}

	writeReply(w, r, reply)
}

func writeReply(w http.ResponseWriter, r *http.Request, reply errorReply) {
	if _, err := utils.WriteJSON(w, models.ErrorResponse{Error: reply.message}, reply.status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing error response")
	}
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeReply(w, r, errorReply{http.StatusNotFound, msgRouteNotFound})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeReply(w, r, errorReply{http.StatusMethodNotAllowed, msgMethodNotAllowed})
}

func writeBadJSON(w http.ResponseWriter) {
	_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: msgInvalidJSON}, http.StatusBadRequest)
}

func writeResponse(w http.ResponseWriter, r *http.Request, data any) {
	if _, err := utils.WriteJSON(w, data, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
