// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-subs-directory/internal/logger"
	"github.com/MKhiriev/go-subs-directory/internal/utils"
	"github.com/MKhiriev/go-subs-directory/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.registerUser").Msg("invalid JSON was passed")
		writeBadJSON(w)
		return
	}

	registered, err := h.services.UserService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.registerUser", err)
		return
	}

	writeResponse(w, r, registered)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.getUser", err)
		return
	}

	writeResponse(w, r, user)
}

func (h *Handler) getUserByInviteKey(w http.ResponseWriter, r *http.Request) {
	preview, err := h.services.UserService.GetByInviteKey(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, r, "*Handler.getUserByInviteKey", err)
		return
	}

	writeResponse(w, r, preview)
}

// listUsers returns every user; ?exclude= drops the caller's own entry.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.List(r.Context(), r.URL.Query().Get("exclude"))
	if err != nil {
		writeError(w, r, "*Handler.listUsers", err)
		return
	}

	writeResponse(w, r, users)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.UpdateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.updateUser").Msg("invalid JSON was passed")
		writeBadJSON(w)
		return
	}

	updated, err := h.services.UserService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, "*Handler.updateUser", err)
		return
	}

	writeResponse(w, r, updated)
}

func (h *Handler) resetInviteKey(w http.ResponseWriter, r *http.Request) {
	reset, err := h.services.UserService.ResetInviteKey(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.resetInviteKey", err)
		return
	}

	writeResponse(w, r, reset)
}

// listSubscribers reads settings.online.subs of every user, not the
// subscription edges.
func (h *Handler) listSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.services.UserService.ListSubscribers(r.Context(), chi.URLParam(r, "inviteKey"))
	if err != nil {
		writeError(w, r, "*Handler.listSubscribers", err)
		return
	}

	writeResponse(w, r, subscribers)
}
