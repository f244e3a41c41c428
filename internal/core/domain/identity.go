package domain

import (
	"errors"
	"time"
)

const (
	// RoleMember is the default role assigned at enrollment.
	RoleMember = "member"
)

// EmbeddingDim is the vector length produced by the face encoder. Documents
// carrying a vector of any other length are ignored as match candidates.
const EmbeddingDim = 128

var ErrExternalIDRequired = errors.New("external_id is required")
var ErrImageDecode = errors.New("image could not be decoded")
var ErrIdentityNotFound = errors.New("identity not found")
var ErrForbidden = errors.New("access forbidden")

// Identity is an enrolled subject keyed by a stable external identifier
// (e.g. an employee code). Upserts with the same ExternalID replace the
// prior embedding and photo.
type Identity struct {
	ID          string    `json:"id"`
	ExternalID  string    `json:"external_id"`
	DisplayName string    `json:"display_name,omitempty"`
	Contact     string    `json:"contact,omitempty"`
	Embedding   []float64 `json:"-"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Role        string    `json:"role"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Enrolled reports whether the identity carries a usable embedding and is
// therefore eligible as a match candidate.
func (i *Identity) Enrolled() bool {
	return len(i.Embedding) > 0
}
