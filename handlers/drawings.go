// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickdraw/auth"
	"github.com/danielhkuo/quickdraw/cliparse"
	"github.com/danielhkuo/quickdraw/engine"
	"github.com/danielhkuo/quickdraw/middleware"
	"github.com/danielhkuo/quickdraw/models"
	"github.com/danielhkuo/quickdraw/policy"
	"github.com/danielhkuo/quickdraw/store"
	"github.com/danielhkuo/quickdraw/validate"
	"github.com/danielhkuo/quickdraw/venue"
)

type DrawingHandler struct {
	store  *store.Store
	venue  *venue.SQLVenue
	engine *engine.Engine
	policy policy.Provider
	cfg    cliparse.Config
}

func NewDrawingHandler(st *store.Store, ven *venue.SQLVenue, eng *engine.Engine, prov policy.Provider, cfg cliparse.Config) *DrawingHandler {
	return &DrawingHandler{store: st, venue: ven, engine: eng, policy: prov, cfg: cfg}
}

// CreateDrawing handles POST /drawings
func (h *DrawingHandler) CreateDrawing(w http.ResponseWriter, r *http.Request) {
	pol := h.policy.Current()
	if !pol.Enabled {
		middleware.ErrorResponse(w, http.StatusForbidden, "Drawings are disabled")
		return
	}

	var req models.CreateDrawingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	now := time.Now()
	if errs := validate.Drawing(req, pol, now); len(errs) > 0 {
		middleware.ValidationErrorResponse(w, errs)
		return
	}

	drawTime, err := validate.ParseDrawTime(req.DrawTime)
	if err != nil {
		// unreachable after validation, but belt and braces
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid draw time")
		return
	}

	drawingID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate drawing ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create drawing")
		return
	}

	d := models.Drawing{
		ID:               drawingID,
		ScopeID:          req.ScopeID,
		OrganizerID:      req.OrganizerID,
		OrganizerName:    req.OrganizerName,
		Name:             req.Name,
		PrizeDescription: req.PrizeDescription,
		PrizeImageURL:    req.PrizeImageURL,
		Description:      req.Description,
		DrawTime:         drawTime,
		WinnerCount:      req.WinnerCount,
		MinParticipants:  req.MinParticipants,
		BackupPolicy:     req.BackupPolicy,
		SelectionRule:    req.SelectionRule,
		Status:           models.StatusOpen,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if req.SelectionRule == models.RuleFixedPosition {
		positions, _ := validate.ParsePositions(req.SpecificPositions)
		d.SpecificPositions = validate.NormalizePositions(positions)
		// for fixed-position drawings the position list determines the count
		d.WinnerCount = len(positions)
	}

	if err := h.venue.EnsureScope(r.Context(), d.ScopeID); err != nil {
		slog.Error("failed to ensure scope", "scope_id", d.ScopeID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create drawing")
		return
	}

	if err := h.store.CreateDrawing(r.Context(), &d); err != nil {
		slog.Error("failed to insert drawing", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create drawing")
		return
	}

	if err := h.venue.Retag(r.Context(), d.ScopeID, engine.TagRunning, ""); err != nil {
		slog.Warn("failed to tag scope", "scope_id", d.ScopeID, "error", err)
	}

	// zero lock delay means participation was never meant to stay open
	if pol.LockDelayMinutes == 0 {
		if err := h.engine.Lock(r.Context(), d.ID); err != nil {
			slog.Warn("failed to lock drawing at creation", "drawing_id", d.ID, "error", err)
		}
	}

	created, err := h.store.GetDrawing(r.Context(), d.ID)
	if err != nil {
		slog.Error("failed to reload drawing", "drawing_id", d.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create drawing")
		return
	}

	slog.Info("drawing created", "drawing_id", d.ID, "organizer", d.OrganizerID, "draw_time", d.DrawTime)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateDrawingResponse{
		Drawing:      *created,
		OrganizerKey: auth.GenerateOrganizerKey(d.ID, h.cfg.OrganizerKeySalt),
	})
}

// EditDrawing handles PUT /drawings/{id}
// Allowed only while the drawing is open and not locked.
func (h *DrawingHandler) EditDrawing(w http.ResponseWriter, r *http.Request) {
	drawingID := r.PathValue("id")
	if drawingID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "drawing id is required")
		return
	}

	d, err := h.store.GetDrawing(r.Context(), drawingID)
	if err == store.ErrNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Drawing not found")
		return
	}
	if err != nil {
		slog.Error("failed to query drawing", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !h.authorized(r, drawingID) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Organizer key or admin token required")
		return
	}

	if !d.CanEdit() {
		middleware.ErrorResponse(w, http.StatusConflict, "Drawing can no longer be edited")
		return
	}

	var req models.CreateDrawingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	// scope and organizer are not editable
	req.ScopeID = d.ScopeID
	req.OrganizerID = d.OrganizerID
	req.OrganizerName = d.OrganizerName

	if errs := validate.Drawing(req, h.policy.Current(), time.Now()); len(errs) > 0 {
		middleware.ValidationErrorResponse(w, errs)
		return
	}

	drawTime, err := validate.ParseDrawTime(req.DrawTime)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid draw time")
		return
	}

	d.Name = req.Name
	d.PrizeDescription = req.PrizeDescription
	d.PrizeImageURL = req.PrizeImageURL
	d.Description = req.Description
	d.DrawTime = drawTime
	d.WinnerCount = req.WinnerCount
	d.MinParticipants = req.MinParticipants
	d.BackupPolicy = req.BackupPolicy
	d.SelectionRule = req.SelectionRule
	d.SpecificPositions = ""
	if req.SelectionRule == models.RuleFixedPosition {
		positions, _ := validate.ParsePositions(req.SpecificPositions)
		d.SpecificPositions = validate.NormalizePositions(positions)
		d.WinnerCount = len(positions)
	}

	applied, err := h.store.UpdateDrawingConfig(r.Context(), d)
	if err != nil {
		slog.Error("failed to update drawing", "drawing_id", drawingID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update drawing")
		return
	}
	if !applied {
		// lost a race against the lock sweeper or the draw
		middleware.ErrorResponse(w, http.StatusConflict, "Drawing can no longer be edited")
		return
	}

	updated, err := h.store.GetDrawing(r.Context(), drawingID)
	if err != nil {
		slog.Error("failed to reload drawing", "drawing_id", drawingID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("drawing edited", "drawing_id", drawingID)
	middleware.JSONResponse(w, http.StatusOK, updated)
}

// CancelDrawing handles POST /drawings/{id}/cancel
func (h *DrawingHandler) CancelDrawing(w http.ResponseWriter, r *http.Request) {
	drawingID := r.PathValue("id")
	if drawingID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "drawing id is required")
		return
	}

	var req models.CancelDrawingRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	requester := h.requester(r, drawingID)

	err := h.engine.Cancel(r.Context(), drawingID, requester, req.Reason)
	switch {
	case err == nil:
		middleware.JSONResponse(w, http.StatusOK, map[string]bool{"cancelled": true})
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Drawing not found")
	case errors.Is(err, engine.ErrPermission):
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the organizer or an administrator may cancel")
	case engine.IsStateConflict(err):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error("failed to cancel drawing", "drawing_id", drawingID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cancel drawing")
	}
}

// TriggerDraw handles POST /drawings/{id}/draw
// Manual out-of-band draw trigger for administrators. Safe to race with
// the scheduled sweep: whoever loses sees a no-op.
func (h *DrawingHandler) TriggerDraw(w http.ResponseWriter, r *http.Request) {
	drawingID := r.PathValue("id")
	if drawingID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "drawing id is required")
		return
	}

	if !auth.ValidAdminToken(r.Header.Get("X-Admin-Token"), h.cfg.AdminToken) {
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin token required")
		return
	}

	err := h.engine.ExecuteDraw(r.Context(), drawingID)
	switch {
	case err == nil:
		d, getErr := h.store.GetDrawing(r.Context(), drawingID)
		if getErr != nil {
			slog.Error("failed to reload drawing", "drawing_id", drawingID, "error", getErr)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": d.Status})
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Drawing not found")
	default:
		// the drawing has been terminalized; surface the failure to the operator
		slog.Error("manual draw failed", "drawing_id", drawingID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Draw failed")
	}
}

// GetDrawing handles GET /drawings/{id}
func (h *DrawingHandler) GetDrawing(w http.ResponseWriter, r *http.Request) {
	drawingID := r.PathValue("id")
	if drawingID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "drawing id is required")
		return
	}

	d, err := h.store.GetDrawing(r.Context(), drawingID)
	if err == store.ErrNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Drawing not found")
		return
	}
	if err != nil {
		slog.Error("failed to query drawing", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	count, err := h.store.CountParticipants(r.Context(), drawingID)
	if err != nil {
		slog.Error("failed to count participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	winners, err := h.store.Winners(r.Context(), drawingID)
	if err != nil {
		slog.Error("failed to load winners", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var untilDraw int64
	if remaining := time.Until(d.DrawTime); remaining > 0 {
		untilDraw = int64(remaining.Seconds())
	}

	middleware.JSONResponse(w, http.StatusOK, models.DrawingResponse{
		Drawing:          *d,
		ParticipantCount: count,
		TimeUntilDraw:    untilDraw,
		Winners:          winners,
	})
}

// GetParticipants handles GET /drawings/{id}/participants
func (h *DrawingHandler) GetParticipants(w http.ResponseWriter, r *http.Request) {
	drawingID := r.PathValue("id")
	if drawingID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "drawing id is required")
		return
	}

	if _, err := h.store.GetDrawing(r.Context(), drawingID); err != nil {
		if err == store.ErrNotFound {
			middleware.ErrorResponse(w, http.StatusNotFound, "Drawing not found")
			return
		}
		slog.Error("failed to query drawing", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	participants, err := h.store.Participants(r.Context(), drawingID)
	if err != nil {
		slog.Error("failed to list participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	winnersCount := 0
	for _, p := range participants {
		if p.IsWinner {
			winnersCount++
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ParticipantsResponse{
		Participants: participants,
		TotalCount:   len(participants),
		WinnersCount: winnersCount,
	})
}

// GetStats handles GET /drawings/stats
func (h *DrawingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.CountsByStatus(r.Context())
	if err != nil {
		slog.Error("failed to aggregate drawings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stats)
}

// authorized reports whether the request carries the drawing's organizer
// key or the admin token.
func (h *DrawingHandler) authorized(r *http.Request, drawingID string) bool {
	if auth.ValidAdminToken(r.Header.Get("X-Admin-Token"), h.cfg.AdminToken) {
		return true
	}
	key := r.Header.Get("X-Organizer-Key")
	return auth.ValidateOrganizerKey(drawingID, key, h.cfg.OrganizerKeySalt) == nil
}

// requester builds the engine-level identity for a state-changing request.
// A valid organizer key acts as the organizer; a valid admin token acts as
// an administrator; anything else is whoever the caller claims to be, which
// the engine will refuse.
func (h *DrawingHandler) requester(r *http.Request, drawingID string) models.Requester {
	if auth.ValidAdminToken(r.Header.Get("X-Admin-Token"), h.cfg.AdminToken) {
		return models.Requester{UserID: "admin", IsAdmin: true}
	}
	if auth.ValidateOrganizerKey(drawingID, r.Header.Get("X-Organizer-Key"), h.cfg.OrganizerKeySalt) == nil {
		if d, err := h.store.GetDrawing(r.Context(), drawingID); err == nil {
			return models.Requester{UserID: d.OrganizerID}
		}
	}
	return models.Requester{UserID: r.Header.Get("X-User-ID")}
}
