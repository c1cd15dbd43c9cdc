package transactionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayease/database"
	"stayease/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInvoiceNotPayable is returned by CompletePayment when the invoice was
// already paid or cancelled by the time the transaction committed.
var ErrInvoiceNotPayable = errors.New("invoice is not in a payable state")

// MongoTransactionRepo implements TransactionRepository using MongoDB. It
// holds the invoice collection as well so the payment confirmation dual
// write can run inside one session.
type MongoTransactionRepo struct {
	coll        *mongo.Collection
	invoiceColl *mongo.Collection
}

// NewMongoTransactionRepo creates a new instance of TransactionRepository using MongoDB.
func NewMongoTransactionRepo() TransactionRepository {
	repo := &MongoTransactionRepo{
		coll:        database.Collection("transactions"),
		invoiceColl: database.Collection("invoices"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the unique transaction_code index. Code generation is
// probabilistic, so the index is what turns a collision into a visible
// duplicate-key error instead of a silently shared correlation key.
func (r *MongoTransactionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "transaction_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "invoice_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by its unique ID.
func (r *MongoTransactionRepo) GetByID(id string) (*models.Transaction, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var txn models.Transaction
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&txn); err != nil {
		return nil, fmt.Errorf("failed to fetch transaction with id %s: %w", id, err)
	}
	return &txn, nil
}

// GetByCode retrieves a transaction by its correlation code; nil if not found.
func (r *MongoTransactionRepo) GetByCode(code string) (*models.Transaction, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var txn models.Transaction
	if err := r.coll.FindOne(ctx, bson.M{"transaction_code": code}).Decode(&txn); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch transaction with code %s: %w", code, err)
	}
	return &txn, nil
}

// ListByInvoice retrieves all transactions recorded against an invoice.
func (r *MongoTransactionRepo) ListByInvoice(invoiceID string) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(bson.M{"invoice_id": invoiceID}, opts)
}

// ListByUser retrieves a user's transactions, newest first.
func (r *MongoTransactionRepo) ListByUser(userID string, limit int64) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(bson.M{"user_id": userID}, opts)
}

func (r *MongoTransactionRepo) find(filter bson.M, opts *options.FindOptions) ([]models.Transaction, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txns []models.Transaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return txns, nil
}

// Create inserts a new transaction document.
func (r *MongoTransactionRepo) Create(txn *models.Transaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, txn)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// MarkFailed flips a transaction to failed and records the gateway blob.
func (r *MongoTransactionRepo) MarkFailed(code, gatewayResponse string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":           models.TransactionFailed,
		"gateway_response": gatewayResponse,
		"updated_at":       time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"transaction_code": code}, update)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s failed: %w", code, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("transaction with code %s not found", code)
	}
	return nil
}

// CompletePayment marks the invoice paid and the transaction completed in a
// single multi-document transaction.
func (r *MongoTransactionRepo) CompletePayment(ctx context.Context, invoiceID string, txn *models.Transaction, create bool) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	txnFn := func(sc mongo.SessionContext) error {
		// Guard on status so of two concurrent confirms only one commits.
		filter := bson.M{
			"id":     invoiceID,
			"status": bson.M{"$in": bson.A{models.InvoicePending, models.InvoiceOverdue}},
		}
		update := bson.M{"$set": bson.M{
			"status":     models.InvoicePaid,
			"paid_date":  txn.PaymentDate,
			"updated_at": now,
		}}
		res, err := r.invoiceColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("mark invoice paid failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrInvoiceNotPayable
		}

		if create {
			txn.CreatedAt = now
			txn.UpdatedAt = now
			if _, err := r.coll.InsertOne(sc, txn); err != nil {
				return fmt.Errorf("insert completed transaction failed: %w", err)
			}
			return nil
		}

		txnUpdate := bson.M{"$set": bson.M{
			"status":           models.TransactionCompleted,
			"amount_paid":      txn.AmountPaid,
			"payment_gateway":  txn.PaymentGateway,
			"gateway_response": txn.GatewayResponse,
			"payment_date":     txn.PaymentDate,
			"updated_at":       now,
		}}
		res, err = r.coll.UpdateOne(sc, bson.M{"transaction_code": txn.TransactionCode}, txnUpdate)
		if err != nil {
			return fmt.Errorf("mark transaction completed failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("transaction with code %s not found", txn.TransactionCode)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrInvoiceNotPayable) {
			return ErrInvoiceNotPayable
		}
		return fmt.Errorf("payment transaction failed: %w", err)
	}

	return nil
}
