// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers contains the HTTP handlers for the drawing API.
// Handlers parse and validate requests, delegate lifecycle decisions to
// the engine, and translate engine errors into HTTP status codes.
package handlers
