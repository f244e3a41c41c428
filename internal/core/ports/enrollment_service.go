package ports

import "context"

// Enrollment rejection codes surfaced to the caller. These are expected
// business outcomes, not errors.
const (
	RejectNoFace        = "NO_FACE"
	RejectMultipleFaces = "MULTIPLE_FACES"
)

// EnrollInput carries everything needed to enroll (or re-enroll) a subject.
type EnrollInput struct {
	ExternalID  string
	DisplayName string
	Contact     string
	Role        string // defaults to "member" when empty
	Image       []byte
}

// EnrollResult is the structured outcome of an enrollment attempt.
// Rejected results carry a RejectCode and perform no storage writes.
type EnrollResult struct {
	Rejected   bool
	RejectCode string // RejectNoFace or RejectMultipleFaces
	PhotoURL   string
	Embedding  []float64
}

// EnrollmentService validates a capture and persists exactly one identity per
// external identifier.
type EnrollmentService interface {
	Enroll(ctx context.Context, input EnrollInput) (*EnrollResult, error)
}
