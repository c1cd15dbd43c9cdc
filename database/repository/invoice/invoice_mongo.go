package invoiceRepo

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

// MongoInvoiceRepo implements InvoiceRepository using MongoDB.
type MongoInvoiceRepo struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

// NewMongoInvoiceRepo creates a new instance of InvoiceRepository using MongoDB.
func NewMongoInvoiceRepo() InvoiceRepository {
	repo := &MongoInvoiceRepo{
		coll:     database.Collection("invoices"),
		counters: database.Collection("counters"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoInvoiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "invoice_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an invoice by its unique ID.
func (r *MongoInvoiceRepo) GetByID(id string) (*models.Invoice, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var inv models.Invoice
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&inv); err != nil {
		return nil, fmt.Errorf("failed to fetch invoice with id %s: %w", id, err)
	}
	return &inv, nil
}

// List retrieves invoices matching the filter, newest issue date first.
func (r *MongoInvoiceRepo) List(filter bson.M, skip, limit int64) ([]models.Invoice, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "issue_date", Value: -1}}).
		SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(filter, opts)
}

// DueWithin retrieves pending invoices whose due date falls within the given
// number of days from now.
func (r *MongoInvoiceRepo) DueWithin(days int) ([]models.Invoice, error) {
	now := time.Now()
	filter := bson.M{
		"status": models.InvoicePending,
		"due_date": bson.M{
			"$gte": now,
			"$lte": now.AddDate(0, 0, days),
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	return r.find(filter, opts)
}

// PaidSorted retrieves paid invoices sorted by paid date descending.
func (r *MongoInvoiceRepo) PaidSorted(limit int64) ([]models.Invoice, error) {
	opts := options.Find().SetSort(bson.D{{Key: "paid_date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(bson.M{"status": models.InvoicePaid}, opts)
}

func (r *MongoInvoiceRepo) find(filter bson.M, opts *options.FindOptions) ([]models.Invoice, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve invoices: %w", err)
	}
	defer cursor.Close(ctx)

	var invoices []models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, fmt.Errorf("failed to decode invoices: %w", err)
	}
	return invoices, nil
}

// Create inserts a new invoice document.
func (r *MongoInvoiceRepo) Create(invoice *models.Invoice) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, invoice)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to an invoice document.
func (r *MongoInvoiceRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update invoice with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("invoice with id %s not found", id)
	}
	return nil
}

// MarkOverdue flips pending invoices past their due date to overdue.
func (r *MongoInvoiceRepo) MarkOverdue(now time.Time) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":   models.InvoicePending,
		"due_date": bson.M{"$lt": now},
	}
	update := bson.M{"$set": bson.M{"status": models.InvoiceOverdue, "updated_at": now}}

	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	return result.ModifiedCount, nil
}

// NextInvoiceNumber reserves the next sequential invoice number using an
// atomic counter document.
func (r *MongoInvoiceRepo) NextInvoiceNumber() (string, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "invoice_number"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return "", fmt.Errorf("failed to reserve invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%04d", counter.Seq), nil
}

// CountByStatus returns invoice counts grouped by status.
func (r *MongoInvoiceRepo) CountByStatus() (map[string]int64, error) {
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
		return nil, fmt.Errorf("failed to count invoices by status: %w", err)
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

// RevenueSince sums paid invoice amounts with a paid date at or after t.
func (r *MongoInvoiceRepo) RevenueSince(t time.Time) (float64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "status", Value: models.InvoicePaid},
			{Key: "paid_date", Value: bson.D{{Key: "$gte", Value: t}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var row struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return 0, fmt.Errorf("failed to decode revenue row: %w", err)
		}
		return row.Total, nil
	}
	return 0, nil
}
