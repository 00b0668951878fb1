// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/quickdraw/auth"
	"github.com/danielhkuo/quickdraw/middleware"
	"github.com/danielhkuo/quickdraw/models"
	"github.com/danielhkuo/quickdraw/venue"
)

type ScopeHandler struct {
	venue *venue.SQLVenue
}

func NewScopeHandler(ven *venue.SQLVenue) *ScopeHandler {
	return &ScopeHandler{venue: ven}
}

// RecordEntry handles POST /scopes/{scope}/entries
// Entries are accepted only into scopes that exist and are still open for
// submissions. Positions are assigned sequentially starting at 2; position 1
// belongs to the organizer's announcement.
func (h *ScopeHandler) RecordEntry(w http.ResponseWriter, r *http.Request) {
	scopeID := r.PathValue("scope")
	if scopeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "scope id is required")
		return
	}

	var req models.RecordEntryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.AuthorID) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "author_id is required")
		return
	}

	entryID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate entry ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record entry")
		return
	}

	entry, err := h.venue.RecordEntry(r.Context(), scopeID, entryID, req, time.Now())
	switch {
	case err == nil:
		middleware.JSONResponse(w, http.StatusCreated, models.RecordEntryResponse{
			EntryID:  entry.ID,
			Position: entry.Position,
		})
	case errors.Is(err, venue.ErrScopeNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Scope not found")
	case errors.Is(err, venue.ErrScopeFrozen):
		middleware.ErrorResponse(w, http.StatusConflict, "Scope is closed for submissions")
	default:
		slog.Error("failed to record entry", "scope_id", scopeID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record entry")
	}
}

// GetScope handles GET /scopes/{scope}
func (h *ScopeHandler) GetScope(w http.ResponseWriter, r *http.Request) {
	scopeID := r.PathValue("scope")
	if scopeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "scope id is required")
		return
	}

	scope, err := h.venue.GetScope(r.Context(), scopeID)
	if errors.Is(err, venue.ErrScopeNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Scope not found")
		return
	}
	if err != nil {
		slog.Error("failed to query scope", "scope_id", scopeID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, scope)
}
