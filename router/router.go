// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickdraw/cliparse"
	"github.com/danielhkuo/quickdraw/engine"
	"github.com/danielhkuo/quickdraw/handlers"
	"github.com/danielhkuo/quickdraw/middleware"
	"github.com/danielhkuo/quickdraw/policy"
	"github.com/danielhkuo/quickdraw/store"
	"github.com/danielhkuo/quickdraw/venue"
)

// NewRouter creates the main application router with all endpoints.
func NewRouter(st *store.Store, ven *venue.SQLVenue, eng *engine.Engine, prov policy.Provider, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	drawings := handlers.NewDrawingHandler(st, ven, eng, prov, cfg)
	scopes := handlers.NewScopeHandler(ven)

	// Drawing lifecycle (organizer and admin operations)
	mux.HandleFunc("POST /drawings", middleware.WithLogging(drawings.CreateDrawing))
	mux.HandleFunc("PUT /drawings/{id}", middleware.WithLogging(drawings.EditDrawing))
	mux.HandleFunc("POST /drawings/{id}/cancel", middleware.WithLogging(drawings.CancelDrawing))
	mux.HandleFunc("POST /drawings/{id}/draw", middleware.WithLogging(drawings.TriggerDraw))

	// Read-only views (public)
	mux.HandleFunc("GET /drawings/stats", middleware.WithLogging(drawings.GetStats))
	mux.HandleFunc("GET /drawings/{id}", middleware.WithLogging(drawings.GetDrawing))
	mux.HandleFunc("GET /drawings/{id}/participants", middleware.WithLogging(drawings.GetParticipants))

	// Venue-facing entry intake
	mux.HandleFunc("POST /scopes/{scope}/entries", middleware.WithLogging(scopes.RecordEntry))
	mux.HandleFunc("GET /scopes/{scope}", middleware.WithLogging(scopes.GetScope))

	// Root endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}
