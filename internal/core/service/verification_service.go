package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartdoor/biometric-api/internal/api/metrics"
	"github.com/smartdoor/biometric-api/internal/core/domain"
	"github.com/smartdoor/biometric-api/internal/core/ports"
)

// UnlockDispatcher is the interface the verification workflow uses to hand
// off unlock commands. Enqueueing is fire-and-forget; the physical unlock
// result never feeds back into the access decision.
type UnlockDispatcher interface {
	Enqueue(cmd ports.UnlockCommand)
}

type verificationService struct {
	encoder  ports.FaceEncoder
	repo     ports.IdentityRepository
	audit    ports.AccessLogRepository
	matcher  *Matcher
	unlocker UnlockDispatcher // optional
	log      zerolog.Logger
}

// NewVerificationService returns a VerificationService implementation.
func NewVerificationService(
	encoder ports.FaceEncoder,
	repo ports.IdentityRepository,
	audit ports.AccessLogRepository,
	matcher *Matcher,
	unlocker UnlockDispatcher,
	log zerolog.Logger,
) ports.VerificationService {
	return &verificationService{
		encoder:  encoder,
		repo:     repo,
		audit:    audit,
		matcher:  matcher,
		unlocker: unlocker,
		log:      log,
	}
}

// Verify matches one live capture against the enrolled registry and appends
// an audit record for every branch except the no-face one (empty frames are
// too frequent to log). Infrastructure failures surface as errors and are
// never reported as denials.
func (s *verificationService) Verify(ctx context.Context, input ports.VerifyInput) (*ports.VerifyResult, error) {
	// A malformed live capture is an operational anomaly, not a policy
	// outcome. The %v verb detaches it from ErrImageDecode so the
	// transport layer reports it as an internal failure rather than the
	// bad-input rejection enrollment uses.
	if err := decodeImage(input.Image); err != nil {
		return nil, fmt.Errorf("verify: malformed capture: %v", err)
	}

	faces, err := s.encoder.DetectAndEncode(ctx, input.Image)
	if err != nil {
		return nil, fmt.Errorf("verify: detect faces: %w", err)
	}
	if len(faces) == 0 {
		metrics.AttemptsTotal.WithLabelValues(string(domain.OutcomeDenied), string(domain.ReasonNoFace)).Inc()
		return &ports.VerifyResult{Reason: domain.ReasonNoFace}, nil
	}

	// A multi-face live frame is not rejected; the first detected face is
	// the probe.
	probe := faces[0].Embedding

	candidates, err := s.repo.ListEnrolled(ctx)
	if err != nil {
		return nil, fmt.Errorf("verify: load registry: %w", err)
	}
	metrics.RegistrySize.Set(float64(len(candidates)))

	if len(candidates) == 0 {
		s.recordAttempt(ctx, input.DeviceRef, "", domain.OutcomeDenied, domain.ReasonNoRegistry, 0)
		return &ports.VerifyResult{Reason: domain.ReasonNoRegistry}, nil
	}

	start := time.Now()
	idx, dist := s.matcher.Match(probe, candidates)
	metrics.MatchDuration.Observe(time.Since(start).Seconds())

	if idx < 0 {
		s.recordAttempt(ctx, input.DeviceRef, "", domain.OutcomeDenied, domain.ReasonNoMatch, 0)
		s.log.Info().Str("device_ref", input.DeviceRef).Msg("access denied: no match")
		return &ports.VerifyResult{Reason: domain.ReasonNoMatch}, nil
	}

	matched := candidates[idx]
	// The matching primitive is boolean accept/reject; 1.0 is a reporting
	// placeholder, not a calibrated probability.
	s.recordAttempt(ctx, input.DeviceRef, matched.ExternalID, domain.OutcomeGranted, domain.ReasonMatched, 1.0)

	if s.unlocker != nil {
		s.unlocker.Enqueue(ports.UnlockCommand{
			DeviceRef:  input.DeviceRef,
			SubjectRef: matched.ExternalID,
		})
	}

	s.log.Info().
		Str("device_ref", input.DeviceRef).
		Str("external_id", matched.ExternalID).
		Float64("distance", dist).
		Msg("access granted")

	return &ports.VerifyResult{
		Granted: true,
		Reason:  domain.ReasonMatched,
		Identity: &ports.MatchedIdentity{
			ExternalID:  matched.ExternalID,
			DisplayName: matched.DisplayName,
			Role:        matched.Role,
		},
		Distance: dist,
	}, nil
}

// recordAttempt appends one audit record. A failed audit write is logged but
// never blocks the decision returned to the device.
func (s *verificationService) recordAttempt(
	ctx context.Context,
	deviceRef, subjectRef string,
	outcome domain.Outcome,
	reason domain.Reason,
	confidence float64,
) {
	attempt := &domain.AccessAttempt{
		SubjectRef: subjectRef,
		Outcome:    outcome,
		Reason:     reason,
		Confidence: confidence,
		DeviceRef:  deviceRef,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.audit.Append(ctx, attempt); err != nil {
		s.log.Warn().Err(err).
			Str("device_ref", deviceRef).
			Str("outcome", string(outcome)).
			Msg("failed to append access attempt")
	}
	metrics.AttemptsTotal.WithLabelValues(string(outcome), string(reason)).Inc()
}
