package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	err := NotFound("op", nil, "video not found")

	if err.Code != http.StatusNotFound {
		t.Errorf("expected code %d, got %d", http.StatusNotFound, err.Code)
	}
	if err.Error() != "video not found" {
		t.Errorf("expected 'video not found', got %q", err.Error())
	}
}

func TestAppErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Storage("op", cause, "failed to open artifact")

	expected := "failed to open artifact: disk on fire"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap did not return the cause")
	}
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		expected  bool
	}{
		{"conversion error", Conversion("op", nil, "bad input"), IsConversion, true},
		{"upload error", Upload("op", nil, "rejected"), IsUpload, true},
		{"not found error", NotFound("op", nil, "missing"), IsNotFound, true},
		{"storage error", Storage("op", nil, "unreadable"), IsStorage, true},
		{"transcription error", Transcription("op", nil, "backend down"), IsTranscription, true},
		{"generation error", Generation("op", nil, "stream died"), IsGeneration, true},
		{"wrong kind", Upload("op", nil, "rejected"), IsConversion, false},
		{"plain error", fmt.Errorf("plain"), IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.predicate(tt.err); got != tt.expected {
				t.Errorf("predicate = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsMatchesWrappedError(t *testing.T) {
	inner := NotFound("op", nil, "missing")
	wrapped := fmt.Errorf("outer: %w", inner)

	if !IsNotFound(wrapped) {
		t.Error("expected wrapped AppError to match its kind")
	}
}
