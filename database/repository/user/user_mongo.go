package userRepo

import (
	"context"
	"fmt"
	"time"

	"stayease/database"
	"stayease/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	repo := &MongoUserRepo{coll: database.Collection("users")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "apartment_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByIDWithProjection retrieves a user by its unique ID using a projection.
// Pass nil for projection to retrieve the full document.
func (r *MongoUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}

// GetByID retrieves a user by its unique ID (full document).
func (r *MongoUserRepo) GetByID(id string) (*models.User, error) {
	return r.GetByIDWithProjection(id, nil)
}

// GetByEmail retrieves a user by its email address; nil if not found.
func (r *MongoUserRepo) GetByEmail(email string) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	return &user, nil
}

// GetByRole retrieves all users holding the given role.
func (r *MongoUserRepo) GetByRole(role string) ([]models.User, error) {
	return r.find(bson.M{"role": role})
}

// GetAll retrieves all users.
func (r *MongoUserRepo) GetAll() ([]models.User, error) {
	return r.find(bson.M{})
}

func (r *MongoUserRepo) find(filter bson.M) ([]models.User, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// Create inserts a new user document.
func (r *MongoUserRepo) Create(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update modifies an existing user document.
func (r *MongoUserRepo) Update(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	user.UpdatedAt = time.Now()
	filter := bson.M{"id": user.ID}
	update := bson.M{"$set": user}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", user.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", user.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a user document.
func (r *MongoUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	update := bson.M{"$set": updateDoc}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", id)
	}
	return nil
}

// PushNotification appends a notification to the user's embedded array.
func (r *MongoUserRepo) PushNotification(id string, n models.Notification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"notifications": n},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to push notification for user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", id)
	}
	return nil
}

// Delete removes a user document by its ID.
func (r *MongoUserRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user with id %s not found", id)
	}
	return nil
}
