// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

  - WithLogging: request/completion logging via slog
  - CORS: cross-origin headers and preflight handling
  - JSONResponse / ErrorResponse / ValidationErrorResponse: response writers
  - ParseJSONBody: request body decoding

Handlers use the helpers directly:

	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
