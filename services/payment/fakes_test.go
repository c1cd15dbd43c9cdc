package payment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	transactionRepo "stayease/database/repository/transaction"
	"stayease/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeInvoiceRepo is an in-memory stand-in for the mongo invoice repository.
type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*models.Invoice
}

func newFakeInvoiceRepo(invoices ...*models.Invoice) *fakeInvoiceRepo {
	r := &fakeInvoiceRepo{invoices: make(map[string]*models.Invoice)}
	for _, inv := range invoices {
		cp := *inv
		r.invoices[inv.ID] = &cp
	}
	return r
}

func (r *fakeInvoiceRepo) GetByID(id string) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, fmt.Errorf("invoice %s not found", id)
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) List(filter bson.M, skip, limit int64) ([]models.Invoice, error) {
	return nil, nil
}

func (r *fakeInvoiceRepo) DueWithin(days int) ([]models.Invoice, error) { return nil, nil }

func (r *fakeInvoiceRepo) PaidSorted(limit int64) ([]models.Invoice, error) { return nil, nil }

func (r *fakeInvoiceRepo) Create(inv *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return fmt.Errorf("invoice %s not found", id)
	}
	if status, ok := updateDoc["status"].(string); ok {
		inv.Status = status
	}
	return nil
}

func (r *fakeInvoiceRepo) MarkOverdue(now time.Time) (int64, error) { return 0, nil }

func (r *fakeInvoiceRepo) NextInvoiceNumber() (string, error) { return "INV-0001", nil }

func (r *fakeInvoiceRepo) CountByStatus() (map[string]int64, error) { return nil, nil }

func (r *fakeInvoiceRepo) RevenueSince(t time.Time) (float64, error) { return 0, nil }

// fakeTransactionRepo mirrors the mongo transaction repository, including the
// not-payable guard inside CompletePayment.
type fakeTransactionRepo struct {
	mu           sync.Mutex
	invoices     *fakeInvoiceRepo
	transactions map[string]*models.Transaction // keyed by transaction code
	createErr    error
}

func newFakeTransactionRepo(invoices *fakeInvoiceRepo) *fakeTransactionRepo {
	return &fakeTransactionRepo{
		invoices:     invoices,
		transactions: make(map[string]*models.Transaction),
	}
}

func (r *fakeTransactionRepo) GetByID(id string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, txn := range r.transactions {
		if txn.ID == id {
			cp := *txn
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("transaction %s not found", id)
}

func (r *fakeTransactionRepo) GetByCode(code string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.transactions[code]
	if !ok {
		return nil, nil
	}
	cp := *txn
	return &cp, nil
}

func (r *fakeTransactionRepo) ListByInvoice(invoiceID string) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Transaction
	for _, txn := range r.transactions {
		if txn.InvoiceID == invoiceID {
			out = append(out, *txn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTransactionRepo) ListByUser(userID string, limit int64) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Transaction
	for _, txn := range r.transactions {
		if txn.UserID == userID {
			out = append(out, *txn)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) Create(txn *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	if _, exists := r.transactions[txn.TransactionCode]; exists {
		return fmt.Errorf("duplicate transaction code %s", txn.TransactionCode)
	}
	txn.CreatedAt = time.Now()
	cp := *txn
	r.transactions[txn.TransactionCode] = &cp
	return nil
}

func (r *fakeTransactionRepo) MarkFailed(code, gatewayResponse string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.transactions[code]
	if !ok {
		return fmt.Errorf("transaction %s not found", code)
	}
	txn.Status = models.TransactionFailed
	txn.GatewayResponse = gatewayResponse
	return nil
}

func (r *fakeTransactionRepo) CompletePayment(ctx context.Context, invoiceID string, txn *models.Transaction, create bool) error {
	r.invoices.mu.Lock()
	inv, ok := r.invoices.invoices[invoiceID]
	if !ok || (inv.Status != models.InvoicePending && inv.Status != models.InvoiceOverdue) {
		r.invoices.mu.Unlock()
		return transactionRepo.ErrInvoiceNotPayable
	}
	now := time.Now()
	inv.Status = models.InvoicePaid
	inv.PaidDate = &now
	r.invoices.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *txn
	if existing, ok := r.transactions[txn.TransactionCode]; ok && !create {
		cp.CreatedAt = existing.CreatedAt
	} else {
		cp.CreatedAt = now
	}
	r.transactions[txn.TransactionCode] = &cp
	return nil
}

func (r *fakeTransactionRepo) completedCount(invoiceID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, txn := range r.transactions {
		if txn.InvoiceID == invoiceID && txn.Status == models.TransactionCompleted {
			n++
		}
	}
	return n
}

// fakeNotifier records notification pushes.
type fakeNotifier struct {
	mu    sync.Mutex
	sent  []string
	types []string
}

func (n *fakeNotifier) NotifyUser(ctx context.Context, userID, notifType, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, userID)
	n.types = append(n.types, notifType)
	return nil
}
