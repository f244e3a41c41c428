package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartdoor/biometric-api/internal/core/domain"
	"github.com/smartdoor/biometric-api/internal/core/ports"
)

const collectionAccessLogs = "access_logs"

// AccessLogRepository implements ports.AccessLogRepository using MongoDB.
// The collection is append-only: nothing in this repository updates or
// deletes documents.
type AccessLogRepository struct {
	col *mongo.Collection
}

func NewAccessLogRepository(db *mongo.Database) *AccessLogRepository {
	return &AccessLogRepository{col: db.Collection(collectionAccessLogs)}
}

type mongoAttempt struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	SubjectRef string             `bson:"subject_ref,omitempty"`
	Outcome    string             `bson:"outcome"`
	Reason     string             `bson:"reason"`
	Confidence float64            `bson:"confidence"`
	DeviceRef  string             `bson:"device_ref"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (m *mongoAttempt) toDomain() domain.AccessAttempt {
	return domain.AccessAttempt{
		ID:         m.ID.Hex(),
		SubjectRef: m.SubjectRef,
		Outcome:    domain.Outcome(m.Outcome),
		Reason:     domain.Reason(m.Reason),
		Confidence: m.Confidence,
		DeviceRef:  m.DeviceRef,
		CreatedAt:  m.CreatedAt,
	}
}

// Append inserts one attempt record.
func (r *AccessLogRepository) Append(ctx context.Context, attempt *domain.AccessAttempt) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAttempt{
		SubjectRef: attempt.SubjectRef,
		Outcome:    string(attempt.Outcome),
		Reason:     string(attempt.Reason),
		Confidence: attempt.Confidence,
		DeviceRef:  attempt.DeviceRef,
		CreatedAt:  attempt.CreatedAt.UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// List returns a page of attempts matching filter, newest first, plus the
// total count.
func (r *AccessLogRepository) List(ctx context.Context, filter ports.ListAttemptsFilter) ([]domain.AccessAttempt, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Outcome != "" {
		query["outcome"] = filter.Outcome
	}
	if filter.DeviceRef != "" {
		query["device_ref"] = filter.DeviceRef
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((filter.Page - 1) * filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var docs []mongoAttempt
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, err
	}

	attempts := make([]domain.AccessAttempt, len(docs))
	for i := range docs {
		attempts[i] = docs[i].toDomain()
	}
	return attempts, total, nil
}

// EnsureIndexes creates necessary indexes on the access_logs collection.
func (r *AccessLogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "device_ref", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
