package utils

import (
	"testing"
)

func TestHashExternalID(t *testing.T) {
	h1 := HashExternalID("google-subject-123")
	h2 := HashExternalID("google-subject-123")
	h3 := HashExternalID("google-subject-124")

	if len(h1) != 64 {
		t.Errorf("Expected 64 hex chars for a 256-bit digest, got %d", len(h1))
	}
	if h1 != h2 {
		t.Error("Expected the digest to be stable for the same subject")
	}
	if h1 == h3 {
		t.Error("Expected different subjects to hash differently")
	}
	if h1 == "google-subject-123" {
		t.Error("Raw subject id must never pass through unhashed")
	}
	for _, r := range h1 {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			t.Fatalf("Unexpected character %q in hex digest", r)
		}
	}
}
