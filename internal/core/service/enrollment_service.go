package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smartdoor/biometric-api/internal/api/metrics"
	"github.com/smartdoor/biometric-api/internal/core/domain"
	"github.com/smartdoor/biometric-api/internal/core/ports"
)

// RegistryInvalidator drops any cached view of the enrolled registry so a
// fresh enrollment becomes visible to verification within the cache TTL.
type RegistryInvalidator interface {
	Invalidate(ctx context.Context) error
}

// EnrollmentService implements ports.EnrollmentService.
type EnrollmentService struct {
	encoder ports.FaceEncoder
	photos  ports.PhotoStore
	repo    ports.IdentityRepository
	cache   RegistryInvalidator // optional
	logger  zerolog.Logger
}

func NewEnrollmentService(
	encoder ports.FaceEncoder,
	photos ports.PhotoStore,
	repo ports.IdentityRepository,
	cache RegistryInvalidator,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		encoder: encoder,
		photos:  photos,
		repo:    repo,
		cache:   cache,
		logger:  logger,
	}
}

// Enroll validates the capture, derives a single embedding, stores the photo
// and upserts the identity. Zero or multiple detected faces are rejections
// with no storage writes. Re-enrolling an existing external_id replaces its
// embedding and photo; the prior photo object is orphaned, not deleted.
func (s *EnrollmentService) Enroll(ctx context.Context, input ports.EnrollInput) (*ports.EnrollResult, error) {
	externalID := strings.TrimSpace(input.ExternalID)
	if externalID == "" {
		return nil, domain.ErrExternalIDRequired
	}

	if err := decodeImage(input.Image); err != nil {
		return nil, err
	}

	faces, err := s.encoder.DetectAndEncode(ctx, input.Image)
	if err != nil {
		metrics.EnrollmentsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("enroll: detect faces: %w", err)
	}

	switch {
	case len(faces) == 0:
		s.logger.Info().Str("external_id", externalID).Msg("enrollment rejected: no face")
		metrics.EnrollmentsTotal.WithLabelValues("no_face").Inc()
		return &ports.EnrollResult{Rejected: true, RejectCode: ports.RejectNoFace}, nil
	case len(faces) > 1:
		s.logger.Info().Str("external_id", externalID).Int("faces", len(faces)).Msg("enrollment rejected: multiple faces")
		metrics.EnrollmentsTotal.WithLabelValues("multiple_faces").Inc()
		return &ports.EnrollResult{Rejected: true, RejectCode: ports.RejectMultipleFaces}, nil
	}

	embedding := faces[0].Embedding

	// Key includes a random disambiguator so re-enrollments never overwrite
	// unrelated objects. A storage failure from here on leaves at most one
	// orphaned photo; the caller re-enrolls.
	key := fmt.Sprintf("faces/%s_%s.jpg", externalID, photoSuffix())
	photoURL, err := s.photos.Put(ctx, key, input.Image, "image/jpeg")
	if err != nil {
		metrics.EnrollmentsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("enroll: upload photo: %w", err)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleMember
	}
	identity := &domain.Identity{
		ExternalID:  externalID,
		DisplayName: input.DisplayName,
		Contact:     input.Contact,
		Embedding:   embedding,
		PhotoURL:    photoURL,
		Role:        role,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Upsert(ctx, identity); err != nil {
		metrics.EnrollmentsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("enroll: upsert identity: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("registry cache invalidation failed")
		}
	}

	s.logger.Info().
		Str("external_id", externalID).
		Str("photo_url", photoURL).
		Int("dim", len(embedding)).
		Msg("identity enrolled")
	metrics.EnrollmentsTotal.WithLabelValues("success").Inc()

	return &ports.EnrollResult{PhotoURL: photoURL, Embedding: embedding}, nil
}

// photoSuffix returns an 8-hex-char random disambiguator for photo keys.
func photoSuffix() string {
	u := uuid.New()
	return hex.EncodeToString(u[:4])
}
