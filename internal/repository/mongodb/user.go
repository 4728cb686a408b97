package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mtlprog/taskboard/internal/domain"
)

// UserRepository gives read access to users.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, idFilter(userID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}

	return doc.toDomain(), nil
}

// GetByIDs retrieves the users with the given IDs. Unknown IDs are skipped.
func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []string) ([]*domain.User, error) {
	if len(userIDs) == 0 {
		return []*domain.User{}, nil
	}

	return r.find(ctx, idsFilter(userIDs), options.Find())
}

// ListRecentActive returns up to limit active users, most recently created first.
func (r *UserRepository) ListRecentActive(ctx context.Context, limit int) ([]*domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	return r.find(ctx, bson.M{"isActive": true}, opts)
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.User, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, len(docs))
	for i := range docs {
		users[i] = docs[i].toDomain()
	}

	return users, nil
}

// Upsert creates or replaces a user. Used to seed local databases and tests.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	doc := userDocument{
		ID:        user.ID,
		Name:      user.Name,
		Title:     user.Title,
		Role:      user.Role,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", user.ID, err)
	}

	return nil
}
