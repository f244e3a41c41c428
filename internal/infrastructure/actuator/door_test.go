package actuator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartdoor/biometric-api/internal/core/ports"
)

func TestUnlock_SendsAuthenticatedCommand(t *testing.T) {
	var gotPath, gotAuth, gotDevice, gotSubject string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotDevice = r.Header.Get("X-Device-Ref")
		gotSubject = r.Header.Get("X-Subject-Ref")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, "door-token")
	err := g.Unlock(context.Background(), ports.UnlockCommand{DeviceRef: "door_a", SubjectRef: "E1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/unlock" {
		t.Errorf("unexpected path: %q", gotPath)
	}
	if gotAuth != "Bearer door-token" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
	if gotDevice != "door_a" || gotSubject != "E1" {
		t.Errorf("refs not forwarded: device=%q subject=%q", gotDevice, gotSubject)
	}
}

func TestUnlock_ControllerRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, "wrong-token")
	if err := g.Unlock(context.Background(), ports.UnlockCommand{DeviceRef: "door_a"}); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestUnlock_ControllerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	g := NewGateway(srv.URL, "token")
	if err := g.Unlock(context.Background(), ports.UnlockCommand{DeviceRef: "door_a"}); err == nil {
		t.Fatal("expected error when the controller is unreachable")
	}
}
