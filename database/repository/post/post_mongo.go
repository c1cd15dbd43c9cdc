package postRepo

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

// MongoPostRepo implements PostRepository using MongoDB.
type MongoPostRepo struct {
	coll *mongo.Collection
}

// NewMongoPostRepo creates a new instance of PostRepository using MongoDB.
func NewMongoPostRepo() PostRepository {
	repo := &MongoPostRepo{coll: database.Collection("posts")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPostRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a post by its unique ID.
func (r *MongoPostRepo) GetByID(id string) (*models.Post, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var post models.Post
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&post); err != nil {
		return nil, fmt.Errorf("failed to fetch post with id %s: %w", id, err)
	}
	return &post, nil
}

// List retrieves posts matching the filter, newest first.
func (r *MongoPostRepo) List(filter bson.M, skip, limit int64) ([]models.Post, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

// Create inserts a new post document.
func (r *MongoPostRepo) Create(post *models.Post) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a post document.
func (r *MongoPostRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update post with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("post with id %s not found", id)
	}
	return nil
}

// PushComment appends a comment to the post.
func (r *MongoPostRepo) PushComment(id string, comment models.Comment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to push comment to post %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("post with id %s not found", id)
	}
	return nil
}

// PullComment removes a comment by its ID.
func (r *MongoPostRepo) PullComment(id, commentID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"comments": bson.M{"id": commentID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to pull comment %s from post %s: %w", commentID, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("post with id %s not found", id)
	}
	return nil
}

// AddLike adds the user to the post's like set. $addToSet keeps the like
// unique per user without a read-modify-write cycle. No other field is
// touched so ModifiedCount tells whether the like was new.
func (r *MongoPostRepo) AddLike(id, userID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"likes": userID},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return false, fmt.Errorf("failed to like post %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return false, fmt.Errorf("post with id %s not found", id)
	}
	return result.ModifiedCount > 0, nil
}

// RemoveLike removes the user from the post's like set.
func (r *MongoPostRepo) RemoveLike(id, userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"likes": userID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to unlike post %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("post with id %s not found", id)
	}
	return nil
}

// Delete removes a post document by its ID.
func (r *MongoPostRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete post with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("post with id %s not found", id)
	}
	return nil
}
