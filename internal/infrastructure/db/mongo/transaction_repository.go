package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aibudget/tracker-api/internal/core/domain"
)

const transactionCollection = "transactions"

// TransactionRepository persists ledger entries. Every operation filters on
// the owning username so one user can never touch another's entries.
type TransactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{coll: db.Collection(transactionCollection)}
}

type mongoTransaction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Username    string             `bson:"username"`
	Type        string             `bson:"type"`
	Amount      float64            `bson:"amount"`
	Category    string             `bson:"category"`
	Description string             `bson:"description,omitempty"`
	Date        time.Time          `bson:"date"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (mt mongoTransaction) toDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:          mt.ID.Hex(),
		Username:    mt.Username,
		Type:        domain.TransactionType(mt.Type),
		Amount:      mt.Amount,
		Category:    mt.Category,
		Description: mt.Description,
		Date:        mt.Date,
		CreatedAt:   mt.CreatedAt,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	doc := mongoTransaction{
		Username:    t.Username,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	created := *t
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, username, id string) (*domain.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTransactionNotFound
	}
	var mt mongoTransaction
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "username": username}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TransactionRepository) List(ctx context.Context, username string) ([]*domain.Transaction, error) {
	return r.findAll(ctx, bson.M{"username": username})
}

func (r *TransactionRepository) ListBetween(ctx context.Context, username string, from, to time.Time) ([]*domain.Transaction, error) {
	return r.findAll(ctx, bson.M{
		"username": username,
		"date":     bson.M{"$gte": from, "$lt": to},
	})
}

func (r *TransactionRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.Transaction, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cur.Close(ctx)

	var transactions []*domain.Transaction
	for cur.Next(ctx) {
		var mt mongoTransaction
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		transactions = append(transactions, mt.toDomain())
	}
	return transactions, cur.Err()
}

func (r *TransactionRepository) Update(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(t.ID)
	if err != nil {
		return nil, domain.ErrTransactionNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid, "username": t.Username}, bson.M{"$set": bson.M{
		"type":        string(t.Type),
		"amount":      t.Amount,
		"category":    t.Category,
		"description": t.Description,
		"date":        t.Date,
	}})
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTransactionNotFound
	}

	updated := *t
	return &updated, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, username, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTransactionNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "username": username})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}
