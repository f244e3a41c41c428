package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartdoor/biometric-api/internal/core/domain"
)

const collectionIdentities = "identities"

// IdentityRepository implements ports.IdentityRepository using MongoDB.
type IdentityRepository struct {
	col *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{col: db.Collection(collectionIdentities)}
}

type mongoIdentity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ExternalID  string             `bson:"external_id"`
	DisplayName string             `bson:"display_name,omitempty"`
	Contact     string             `bson:"contact,omitempty"`
	Embedding   []float64          `bson:"embedding,omitempty"`
	PhotoURL    string             `bson:"photo_url,omitempty"`
	Role        string             `bson:"role"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m *mongoIdentity) toDomain() domain.Identity {
	return domain.Identity{
		ID:          m.ID.Hex(),
		ExternalID:  m.ExternalID,
		DisplayName: m.DisplayName,
		Contact:     m.Contact,
		Embedding:   m.Embedding,
		PhotoURL:    m.PhotoURL,
		Role:        m.Role,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Upsert inserts or replaces the identity document keyed by external_id.
// The unique index on external_id guarantees at most one document per key;
// concurrent upserts for the same key resolve last-write-wins.
func (r *IdentityRepository) Upsert(ctx context.Context, identity *domain.Identity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"external_id": identity.ExternalID}
	update := bson.M{"$set": bson.M{
		"external_id":  identity.ExternalID,
		"display_name": identity.DisplayName,
		"contact":      identity.Contact,
		"embedding":    identity.Embedding,
		"photo_url":    identity.PhotoURL,
		"role":         identity.Role,
		"updated_at":   identity.UpdatedAt.UTC(),
	}}

	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ListEnrolled returns every identity whose embedding is non-null, in store
// return order.
func (r *IdentityRepository) ListEnrolled(ctx context.Context) ([]domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"embedding": bson.M{"$ne": nil}}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []mongoIdentity
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	identities := make([]domain.Identity, len(docs))
	for i := range docs {
		identities[i] = docs[i].toDomain()
	}
	return identities, nil
}

// EnsureIndexes creates necessary indexes on the identities collection.
func (r *IdentityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "external_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
