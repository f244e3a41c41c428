package service

import (
	"context"
	"errors"
	"testing"

	"github.com/smartdoor/biometric-api/internal/core/domain"
	"github.com/smartdoor/biometric-api/internal/core/ports"
)

type recordingLogRepo struct {
	lastFilter ports.ListAttemptsFilter
	items      []domain.AccessAttempt
	total      int64
	err        error
}

func (r *recordingLogRepo) Append(_ context.Context, _ *domain.AccessAttempt) error { return nil }

func (r *recordingLogRepo) List(_ context.Context, filter ports.ListAttemptsFilter) ([]domain.AccessAttempt, int64, error) {
	r.lastFilter = filter
	if r.err != nil {
		return nil, 0, r.err
	}
	return r.items, r.total, nil
}

func TestAccessLogService_Defaults(t *testing.T) {
	repo := &recordingLogRepo{total: 45}
	svc := NewAccessLogService(repo)

	result, err := svc.ListAttempts(context.Background(), ports.ListAttemptsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != 20 {
		t.Errorf("expected defaults page=1 limit=20, got %+v", repo.lastFilter)
	}
	if result.TotalPages != 3 {
		t.Errorf("45 rows at limit 20 is 3 pages, got %d", result.TotalPages)
	}
}

func TestAccessLogService_LimitIsCapped(t *testing.T) {
	repo := &recordingLogRepo{}
	svc := NewAccessLogService(repo)

	if _, err := svc.ListAttempts(context.Background(), ports.ListAttemptsInput{Limit: 5000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.Limit != 100 {
		t.Errorf("expected limit capped at 100, got %d", repo.lastFilter.Limit)
	}
}

func TestAccessLogService_FiltersPassThrough(t *testing.T) {
	repo := &recordingLogRepo{}
	svc := NewAccessLogService(repo)

	_, err := svc.ListAttempts(context.Background(), ports.ListAttemptsInput{
		Outcome:   string(domain.OutcomeDenied),
		DeviceRef: "door_a",
		Page:      3,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := ports.ListAttemptsFilter{Outcome: "denied", DeviceRef: "door_a", Page: 3, Limit: 10}
	if repo.lastFilter != want {
		t.Errorf("filter mismatch: got %+v want %+v", repo.lastFilter, want)
	}
}

func TestAccessLogService_ExactPageBoundary(t *testing.T) {
	repo := &recordingLogRepo{total: 40}
	svc := NewAccessLogService(repo)

	result, err := svc.ListAttempts(context.Background(), ports.ListAttemptsInput{Limit: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalPages != 2 {
		t.Errorf("40 rows at limit 20 is 2 pages, got %d", result.TotalPages)
	}
}

func TestAccessLogService_RepoError(t *testing.T) {
	cause := errors.New("db unavailable")
	svc := NewAccessLogService(&recordingLogRepo{err: cause})

	_, err := svc.ListAttempts(context.Background(), ports.ListAttemptsInput{})
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}
