package service

import (
	"context"
	"fmt"

	"github.com/smartdoor/biometric-api/internal/core/ports"
)

const (
	defaultLogLimit = 20
	maxLogLimit     = 100
)

type accessLogService struct {
	repo ports.AccessLogRepository
}

// NewAccessLogService returns an AccessLogService implementation.
func NewAccessLogService(repo ports.AccessLogRepository) ports.AccessLogService {
	return &accessLogService{repo: repo}
}

// ListAttempts returns a page of audit records, newest first.
func (s *accessLogService) ListAttempts(ctx context.Context, input ports.ListAttemptsInput) (*ports.ListAttemptsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListAttemptsFilter{
		Outcome:   input.Outcome,
		DeviceRef: input.DeviceRef,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListAttemptsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
