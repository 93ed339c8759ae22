package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFoundWithID("Booking", "abc"), CodeNotFound, http.StatusNotFound},
		{"invalid interval", InvalidInterval("bad dates"), CodeInvalidInterval, http.StatusBadRequest},
		{"conflict", Conflict("taken"), CodeConflict, http.StatusConflict},
		{"transition", InvalidTransition("CANCELLED", "CONFIRMED"), CodeInvalidTransition, http.StatusConflict},
		{"not implemented", NotImplemented("later"), CodeNotImplemented, http.StatusNotImplemented},
		{"internal", Internal("boom", errors.New("db down")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.status)
			}
		})
	}
}

func TestAsThroughWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("create booking: %w", Internal("Failed to create booking", cause))

	appErr, ok := As(wrapped)
	if !ok {
		t.Fatal("expected AppError in chain")
	}
	if !errors.Is(appErr, cause) {
		t.Error("AppError should unwrap to its cause")
	}
	if HTTPStatus(wrapped) != http.StatusInternalServerError {
		t.Errorf("HTTPStatus = %d", HTTPStatus(wrapped))
	}
	if !IsCode(wrapped, CodeInternal) {
		t.Error("IsCode should match through wrapping")
	}
}

func TestHTTPStatus_PlainError(t *testing.T) {
	if got := HTTPStatus(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("HTTPStatus(plain) = %d, want 500", got)
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("Property", "p-1")
	if err.Details["id"] != "p-1" || err.Details["resource"] != "Property" {
		t.Errorf("unexpected details: %v", err.Details)
	}
	if err.Message != "Property with ID p-1 not found" {
		t.Errorf("message = %q", err.Message)
	}
}
