package domain

import "time"

// Outcome is the access decision recorded for a verification attempt.
type Outcome string

const (
	OutcomeGranted Outcome = "granted"
	OutcomeDenied  Outcome = "denied"
)

// Reason explains why an attempt resolved the way it did.
type Reason string

const (
	ReasonMatched    Reason = "matched"
	ReasonNoFace     Reason = "no_face"
	ReasonNoMatch    Reason = "no_match"
	ReasonNoRegistry Reason = "no_registry"
)

// AccessAttempt is one append-only audit record per verification call.
// SubjectRef is empty when no identity matched. Records are never mutated
// or deleted.
type AccessAttempt struct {
	ID         string    `json:"id"`
	SubjectRef string    `json:"subject_ref,omitempty"`
	Outcome    Outcome   `json:"outcome"`
	Reason     Reason    `json:"reason"`
	Confidence float64   `json:"confidence"`
	DeviceRef  string    `json:"device_ref"`
	CreatedAt  time.Time `json:"created_at"`
}
