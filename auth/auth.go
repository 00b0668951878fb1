// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidOrganizerKey = errors.New("invalid organizer key")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateOrganizerKey creates an HMAC-based management key for a drawing.
// This is deterministic and verifiable, so it never needs to be stored.
func GenerateOrganizerKey(drawingID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(drawingID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateOrganizerKey checks if the provided key is valid for the drawing
func ValidateOrganizerKey(drawingID, key, salt string) error {
	expected := GenerateOrganizerKey(drawingID, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidOrganizerKey
	}
	return nil
}

// ValidAdminToken compares the presented token against the configured one
// in constant time. An empty presented token never matches.
func ValidAdminToken(presented, configured string) bool {
	if presented == "" || configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1
}
