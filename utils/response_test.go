package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"conciergerie-backend/apperrors"

	"github.com/gin-gonic/gin"
)

func render(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondError(c, err)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"app error", apperrors.Conflict("taken"), http.StatusConflict, apperrors.CodeConflict},
		{"plain error", errors.New("db down"), http.StatusInternalServerError, apperrors.CodeInternal},
		{"invalid interval", apperrors.InvalidInterval("bad dates"), http.StatusBadRequest, apperrors.CodeInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := render(t, tt.err)
			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if body["success"] != false {
				t.Errorf("success = %v", body["success"])
			}
			errBody, _ := body["error"].(map[string]any)
			if errBody["code"] != tt.code {
				t.Errorf("code = %v, want %s", errBody["code"], tt.code)
			}
		})
	}
}

func TestRespondError_Details(t *testing.T) {
	_, body := render(t, apperrors.Conflict("taken").WithDetails(map[string]any{"conflictingBookingIds": []string{"b1"}}))
	errBody, _ := body["error"].(map[string]any)
	details, _ := errBody["details"].(map[string]any)
	ids, _ := details["conflictingBookingIds"].([]any)
	if len(ids) != 1 || ids[0] != "b1" {
		t.Errorf("details = %v", errBody["details"])
	}
}
