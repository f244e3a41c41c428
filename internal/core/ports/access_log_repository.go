package ports

import (
	"context"

	"github.com/smartdoor/biometric-api/internal/core/domain"
)

// ListAttemptsFilter carries the query parameters for listing access attempts.
type ListAttemptsFilter struct {
	Outcome   string // optional: "granted" or "denied"
	DeviceRef string // optional: filter by originating device
	Page      int    // 1-based
	Limit     int    // max rows per page (capped at 100 by service)
}

// AccessLogRepository is the append-only sink for access attempts.
type AccessLogRepository interface {
	// Append persists one attempt record. Records are never updated or
	// deleted afterwards.
	Append(ctx context.Context, attempt *domain.AccessAttempt) error

	// List returns a page of attempts matching filter, newest first, and
	// the total count.
	List(ctx context.Context, filter ListAttemptsFilter) ([]domain.AccessAttempt, int64, error)
}
