package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gradebook/portal/internal/core/domain"
)

const accountCollection = "accounts"

// AccountRepository implements ports.AccountRepository using MongoDB.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

type mongoAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Account      string             `bson:"account"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CourseIDs    []string           `bson:"course_ids,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

// EnsureIndexes creates the unique index on the account name.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "account", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("account index: %w", err)
	}
	return nil
}

func (r *AccountRepository) Create(ctx context.Context, acct *domain.Account) (*domain.Account, error) {
	doc := mongoAccount{
		Account:      acct.Account,
		PasswordHash: acct.PasswordHash,
		Role:         string(acct.Role),
		CourseIDs:    acct.CourseIDs,
		CreatedAt:    acct.CreatedAt.Unix(),
		UpdatedAt:    acct.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return toDomainAccount(doc), nil
}

func (r *AccountRepository) FindByAccount(ctx context.Context, account string) (*domain.Account, error) {
	var doc mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"account": account}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomainAccount(doc), nil
}

func toDomainAccount(doc mongoAccount) *domain.Account {
	return &domain.Account{
		ID:           doc.ID.Hex(),
		Account:      doc.Account,
		PasswordHash: doc.PasswordHash,
		Role:         domain.Role(doc.Role),
		CourseIDs:    doc.CourseIDs,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
