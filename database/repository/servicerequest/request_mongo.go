package requestRepo

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

// MongoServiceRequestRepo implements ServiceRequestRepository using MongoDB.
type MongoServiceRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRequestRepo creates a new instance of ServiceRequestRepository using MongoDB.
func NewMongoServiceRequestRepo() ServiceRequestRepository {
	repo := &MongoServiceRequestRepo{coll: database.Collection("service_requests")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoServiceRequestRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "assignee_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a service request by its unique ID.
func (r *MongoServiceRequestRepo) GetByID(id string) (*models.ServiceRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.ServiceRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to fetch service request with id %s: %w", id, err)
	}
	return &req, nil
}

// List retrieves requests matching the filter, newest first.
func (r *MongoServiceRequestRepo) List(filter bson.M, skip, limit int64) ([]models.ServiceRequest, error) {
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
		return nil, fmt.Errorf("failed to retrieve service requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.ServiceRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode service requests: %w", err)
	}
	return requests, nil
}

// Create inserts a new service request document.
func (r *MongoServiceRequestRepo) Create(request *models.ServiceRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to create service request: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a service request document.
func (r *MongoServiceRequestRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update service request with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service request with id %s not found", id)
	}
	return nil
}

// PushMessage appends a chat message to the request's embedded thread.
func (r *MongoServiceRequestRepo) PushMessage(id string, msg models.RequestMessage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to push message to service request %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service request with id %s not found", id)
	}
	return nil
}

// CountByStatus returns request counts grouped by status.
func (r *MongoServiceRequestRepo) CountByStatus() (map[string]int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count service requests by status: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode status count: %w", err)
		}
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Delete removes a service request document by its ID.
func (r *MongoServiceRequestRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service request with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("service request with id %s not found", id)
	}
	return nil
}
