package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	recordID := Generate()

	// Check format
	if !strings.HasPrefix(recordID, "gen-") {
		t.Errorf("expected ID to start with 'gen-', got %s", recordID)
	}

	// Check uniqueness
	recordID2 := Generate()
	if recordID == recordID2 {
		t.Error("expected different IDs for consecutive calls")
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		recordID := Generate()
		if seen[recordID] {
			t.Errorf("duplicate ID generated: %s", recordID)
		}
		seen[recordID] = true
	}
}
