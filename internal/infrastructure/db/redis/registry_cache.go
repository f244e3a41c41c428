package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smartdoor/biometric-api/internal/core/domain"
	"github.com/smartdoor/biometric-api/internal/core/ports"
)

const (
	registryKey = "registry:enrolled"
	registryTTL = 30 * time.Second
)

// RegistryCache decorates an IdentityRepository with a short-lived Redis
// cache of the enrolled set. Verification hits this cache on every call;
// enrollment invalidates it, so a fresh enrollment is visible after at most
// registryTTL even when invalidation is lost.
type RegistryCache struct {
	inner  ports.IdentityRepository
	client *redis.Client
	log    zerolog.Logger
}

// NewRegistryCache wraps inner with a Redis-backed cache.
func NewRegistryCache(inner ports.IdentityRepository, client *redis.Client, log zerolog.Logger) *RegistryCache {
	return &RegistryCache{inner: inner, client: client, log: log}
}

// Upsert delegates to the inner repository. The cache is not written here;
// the enrollment workflow calls Invalidate after a successful upsert.
func (c *RegistryCache) Upsert(ctx context.Context, identity *domain.Identity) error {
	return c.inner.Upsert(ctx, identity)
}

// cachedIdentity is the cache wire format. domain.Identity hides its
// embedding from JSON responses, so the cache carries its own shape.
type cachedIdentity struct {
	ExternalID  string    `json:"external_id"`
	DisplayName string    `json:"display_name,omitempty"`
	Contact     string    `json:"contact,omitempty"`
	Embedding   []float64 `json:"embedding"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	Role        string    `json:"role"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCached(in []domain.Identity) []cachedIdentity {
	out := make([]cachedIdentity, len(in))
	for i, id := range in {
		out[i] = cachedIdentity{
			ExternalID:  id.ExternalID,
			DisplayName: id.DisplayName,
			Contact:     id.Contact,
			Embedding:   id.Embedding,
			PhotoURL:    id.PhotoURL,
			Role:        id.Role,
			UpdatedAt:   id.UpdatedAt,
		}
	}
	return out
}

func fromCached(in []cachedIdentity) []domain.Identity {
	out := make([]domain.Identity, len(in))
	for i, id := range in {
		out[i] = domain.Identity{
			ExternalID:  id.ExternalID,
			DisplayName: id.DisplayName,
			Contact:     id.Contact,
			Embedding:   id.Embedding,
			PhotoURL:    id.PhotoURL,
			Role:        id.Role,
			UpdatedAt:   id.UpdatedAt,
		}
	}
	return out
}

// ListEnrolled returns the cached enrolled set when present, falling back to
// the store on miss or any cache failure. A cache error degrades to a store
// read, never to a request failure.
func (c *RegistryCache) ListEnrolled(ctx context.Context) ([]domain.Identity, error) {
	raw, err := c.client.Get(ctx, registryKey).Bytes()
	if err == nil {
		var cached []cachedIdentity
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return fromCached(cached), nil
		}
		// Corrupt entry: drop it and fall through to the store.
		_ = c.client.Del(ctx, registryKey).Err()
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Msg("registry cache read failed")
	}

	identities, err := c.inner.ListEnrolled(ctx)
	if err != nil {
		return nil, err
	}

	if raw, jsonErr := json.Marshal(toCached(identities)); jsonErr == nil {
		if setErr := c.client.Set(ctx, registryKey, raw, registryTTL).Err(); setErr != nil {
			c.log.Warn().Err(setErr).Msg("registry cache write failed")
		}
	}
	return identities, nil
}

// Invalidate drops the cached enrolled set.
func (c *RegistryCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, registryKey).Err()
}
