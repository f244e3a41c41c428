package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/smartdoor/biometric-api/internal/core/domain"
)

type stubAuthService struct {
	registerUser *domain.User
	registerErr  error
	loginToken   string
	loginUser    *domain.User
	loginErr     error
}

func (s *stubAuthService) Register(_ context.Context, _, _, _, _ string) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registerUser, nil
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, s.loginUser, nil
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Created(t *testing.T) {
	svc := &stubAuthService{registerUser: &domain.User{ID: "u-1", Username: "alice", Role: domain.RoleAdmin}}
	h := NewAuthHandler(svc)

	req := jsonRequest(http.MethodPost, "/auth/register", `{"username":"alice","password":"s3cret","role":"admin"}`)
	c, rec := newTestContext(req)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User == nil || resp.User.Username != "alice" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Token != "" {
		t.Error("registration must not issue a token")
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrUserExists})

	req := jsonRequest(http.MethodPost, "/auth/register", `{"username":"alice","password":"s3cret","role":"admin"}`)
	c, rec := newTestContext(req)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidInput(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrInvalidCredentials})

	req := jsonRequest(http.MethodPost, "/auth/register", `{"username":"alice"}`)
	c, rec := newTestContext(req)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		loginToken: "signed.jwt.token",
		loginUser:  &domain.User{ID: "u-1", Username: "alice", Role: domain.RoleAdmin},
	}
	h := NewAuthHandler(svc)

	req := jsonRequest(http.MethodPost, "/auth/login", `{"username":"alice","password":"s3cret"}`)
	c, rec := newTestContext(req)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed.jwt.token" {
		t.Errorf("expected token in response, got %+v", resp)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	req := jsonRequest(http.MethodPost, "/auth/login", `{"username":"alice","password":"wrong"}`)
	c, rec := newTestContext(req)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrUserNotFound})

	req := jsonRequest(http.MethodPost, "/auth/login", `{"username":"nobody","password":"s3cret"}`)
	c, rec := newTestContext(req)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
