package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smartdoor/biometric-api/internal/core/domain"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return rec, resp
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{domain.ErrExternalIDRequired, http.StatusBadRequest},
		{domain.ErrImageDecode, http.StatusBadRequest},
		{domain.ErrIdentityNotFound, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec, _ := handleError(t, tt.err)
			if rec.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, rec.Code)
			}
		})
	}
}

func TestErrorHandler_WrappedDomainErrorStillMaps(t *testing.T) {
	rec, _ := handleError(t, fmt.Errorf("enroll: %w", domain.ErrImageDecode))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for wrapped decode error, got %d", rec.Code)
	}
}

func TestErrorHandler_EchoHTTPErrorPassesThrough(t *testing.T) {
	rec, resp := handleError(t, echo.NewHTTPError(http.StatusBadRequest, "image file is required"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if resp.Error != "image file is required" {
		t.Errorf("unexpected message: %q", resp.Error)
	}
}

func TestErrorHandler_UnexpectedErrorIsGeneric500(t *testing.T) {
	rec, resp := handleError(t, errors.New("mongo: connection refused to 10.0.0.5"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if resp.Error != "internal server error" {
		t.Errorf("internal details must not leak to clients, got %q", resp.Error)
	}
}
