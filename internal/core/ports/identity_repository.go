package ports

import (
	"context"

	"github.com/smartdoor/biometric-api/internal/core/domain"
)

// IdentityRepository defines persistence operations for enrolled identities.
type IdentityRepository interface {
	// Upsert inserts or replaces the identity keyed by ExternalID.
	// Last write wins; there is no optimistic locking.
	Upsert(ctx context.Context, identity *domain.Identity) error

	// ListEnrolled returns every identity with a non-null embedding, in
	// store return order. Identities without an embedding are never
	// returned.
	ListEnrolled(ctx context.Context) ([]domain.Identity, error)
}
