package apartmentRepo

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

// MongoApartmentRepo implements ApartmentRepository using MongoDB.
type MongoApartmentRepo struct {
	coll *mongo.Collection
}

// NewMongoApartmentRepo creates a new instance of ApartmentRepository using MongoDB.
func NewMongoApartmentRepo() ApartmentRepository {
	repo := &MongoApartmentRepo{coll: database.Collection("apartments")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoApartmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an apartment by its unique ID.
func (r *MongoApartmentRepo) GetByID(id string) (*models.Apartment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var apt models.Apartment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&apt); err != nil {
		return nil, fmt.Errorf("failed to fetch apartment with id %s: %w", id, err)
	}
	return &apt, nil
}

// GetByCode retrieves an apartment by its unit code; nil if not found.
func (r *MongoApartmentRepo) GetByCode(code string) (*models.Apartment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var apt models.Apartment
	if err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&apt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch apartment with code %s: %w", code, err)
	}
	return &apt, nil
}

// List retrieves apartments matching the filter with skip/limit paging.
func (r *MongoApartmentRepo) List(filter bson.M, skip, limit int64) ([]models.Apartment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "code", Value: 1}}).
		SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve apartments: %w", err)
	}
	defer cursor.Close(ctx)

	var apartments []models.Apartment
	if err := cursor.All(ctx, &apartments); err != nil {
		return nil, fmt.Errorf("failed to decode apartments: %w", err)
	}
	return apartments, nil
}

// Create inserts a new apartment document.
func (r *MongoApartmentRepo) Create(apartment *models.Apartment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	apartment.CreatedAt = now
	apartment.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, apartment)
	if err != nil {
		return fmt.Errorf("failed to create apartment: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to an apartment document.
func (r *MongoApartmentRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update apartment with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("apartment with id %s not found", id)
	}
	return nil
}

// AddResident adds a user to the apartment's resident set.
func (r *MongoApartmentRepo) AddResident(id, userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"resident_ids": userID},
		"$set":      bson.M{"status": models.ApartmentOccupied, "updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add resident to apartment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("apartment with id %s not found", id)
	}
	return nil
}

// RemoveResident removes a user from the apartment's resident set.
func (r *MongoApartmentRepo) RemoveResident(id, userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"resident_ids": userID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to remove resident from apartment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("apartment with id %s not found", id)
	}
	return nil
}

// Delete removes an apartment document by its ID.
func (r *MongoApartmentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete apartment with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("apartment with id %s not found", id)
	}
	return nil
}
