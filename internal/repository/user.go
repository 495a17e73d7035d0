package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskdock/taskdock-go/internal/model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

// UserRepository handles user persistence against the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// Create inserts a new user. It checks the unique fields first so a
// duplicate gets a clean error without a write attempt; the unique
// indexes still back the check against concurrent registrations.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	existing := r.coll.FindOne(ctx, bson.M{"$or": []bson.M{
		{"user_id": user.UserID},
		{"email": user.Email},
		{"mobile": user.Mobile},
	}})
	if err := existing.Err(); err == nil {
		return ErrDuplicateUser
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	user.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateUser
		}
		return err
	}

	return nil
}

// GetByUserID retrieves a user by their unique user identifier.
func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*model.User, error) {
	user := &model.User{}
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// List returns all users ordered by creation time.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}
