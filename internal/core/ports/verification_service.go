package ports

import (
	"context"

	"github.com/smartdoor/biometric-api/internal/core/domain"
)

// VerifyInput is a single live capture from a device.
type VerifyInput struct {
	Image     []byte
	DeviceRef string
}

// MatchedIdentity is the subject view returned on a granted decision.
type MatchedIdentity struct {
	ExternalID  string
	DisplayName string
	Role        string
}

// VerifyResult is the structured access decision. Denials are policy
// outcomes; infrastructure failures are returned as errors, never folded
// into a denial.
type VerifyResult struct {
	Granted  bool
	Reason   domain.Reason
	Identity *MatchedIdentity // nil unless Granted
	Distance float64          // embedding distance of the selected match; informational
}

// VerificationService matches a live probe against the enrolled registry and
// records the outcome.
type VerificationService interface {
	Verify(ctx context.Context, input VerifyInput) (*VerifyResult, error)
}
