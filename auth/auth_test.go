// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("Expected 32 hex chars, got %d", len(id))
	}

	id2, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if id == id2 {
		t.Error("Expected distinct IDs from successive calls")
	}
}

func TestOrganizerKeyRoundTrip(t *testing.T) {
	key := GenerateOrganizerKey("drawing123", "test-salt")

	if key == "" {
		t.Fatal("Expected non-empty organizer key")
	}
	if strings.Contains(key, "=") {
		t.Error("Expected padding to be trimmed")
	}

	if err := ValidateOrganizerKey("drawing123", key, "test-salt"); err != nil {
		t.Errorf("Expected valid key to validate: %v", err)
	}
}

func TestOrganizerKeyDeterministic(t *testing.T) {
	k1 := GenerateOrganizerKey("drawing123", "salt")
	k2 := GenerateOrganizerKey("drawing123", "salt")
	if k1 != k2 {
		t.Error("Expected identical keys for identical inputs")
	}
}

func TestValidateOrganizerKeyRejections(t *testing.T) {
	key := GenerateOrganizerKey("drawing123", "salt")

	if err := ValidateOrganizerKey("drawing456", key, "salt"); err == nil {
		t.Error("Expected key for another drawing to be rejected")
	}
	if err := ValidateOrganizerKey("drawing123", key, "other-salt"); err == nil {
		t.Error("Expected key with wrong salt to be rejected")
	}
	if err := ValidateOrganizerKey("drawing123", "", "salt"); err == nil {
		t.Error("Expected empty key to be rejected")
	}
}

func TestValidAdminToken(t *testing.T) {
	if !ValidAdminToken("secret", "secret") {
		t.Error("Expected matching token to be accepted")
	}
	if ValidAdminToken("wrong", "secret") {
		t.Error("Expected mismatched token to be rejected")
	}
	if ValidAdminToken("", "secret") {
		t.Error("Expected empty token to be rejected")
	}
	if ValidAdminToken("", "") {
		t.Error("Expected empty configured token to reject everything")
	}
}
