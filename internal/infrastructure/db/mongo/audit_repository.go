package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

const auditCollection = "admin_audit"

// AuditRepository appends admin mutations to the audit collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEntry struct {
	Action     string    `bson:"action"`
	ActorID    string    `bson:"actor_id"`
	Actor      string    `bson:"actor"`
	TargetID   string    `bson:"target_id"`
	OccurredAt time.Time `bson:"occurred_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	doc := mongoAuditEntry{
		Action:     string(entry.Action),
		ActorID:    entry.ActorID,
		Actor:      entry.Actor,
		TargetID:   entry.TargetID,
		OccurredAt: entry.OccurredAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
