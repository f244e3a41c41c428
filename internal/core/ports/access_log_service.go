package ports

import (
	"context"

	"github.com/smartdoor/biometric-api/internal/core/domain"
)

// ListAttemptsInput carries all parameters for the access-log listing
// endpoint.
type ListAttemptsInput struct {
	Outcome   string
	DeviceRef string
	Page      int
	Limit     int
}

// ListAttemptsResult is returned by ListAttempts.
type ListAttemptsResult struct {
	Items      []domain.AccessAttempt
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AccessLogService exposes read access to the audit trail for operators.
type AccessLogService interface {
	ListAttempts(ctx context.Context, input ListAttemptsInput) (*ListAttemptsResult, error)
}
