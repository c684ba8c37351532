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

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.SubscribeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		log.Err(err).Str("func", "*Handler.subscribe").Msg("invalid JSON was passed")
		writeBadJSON(w)
		return
	}

	if err := h.services.SubscriptionService.Subscribe(r.Context(), req); err != nil {
		writeError(w, r, "*Handler.subscribe", err)
		return
	}

	writeResponse(w, r, models.SuccessResponse{Success: true})
}

func (h *Handler) listSubscriptionTargets(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.SubscriptionService.ListTargets(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, r, "*Handler.listSubscriptionTargets", err)
		return
	}

	writeResponse(w, r, users)
}
