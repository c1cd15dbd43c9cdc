package transactionRepo

import (
	"context"

	"stayease/models"
)

// TransactionRepository defines methods for payment-attempt data access.
type TransactionRepository interface {
	GetByID(id string) (*models.Transaction, error)
	// GetByCode retrieves a transaction by its correlation code; nil if not found.
	GetByCode(code string) (*models.Transaction, error)
	// ListByInvoice retrieves all transactions recorded against an invoice.
	ListByInvoice(invoiceID string) ([]models.Transaction, error)
	// ListByUser retrieves a user's transactions, newest first.
	ListByUser(userID string, limit int64) ([]models.Transaction, error)
	Create(txn *models.Transaction) error
	// MarkFailed flips a transaction to failed and records the gateway blob.
	MarkFailed(code, gatewayResponse string) error
	// CompletePayment marks the invoice paid and the transaction completed in
	// a single multi-document transaction. When create is true the
	// transaction document is inserted, otherwise it is updated in place.
	// The invoice filter only matches non-paid invoices, so of two concurrent
	// confirms exactly one commits; the loser gets ErrInvoiceNotPayable.
	CompletePayment(ctx context.Context, invoiceID string, txn *models.Transaction, create bool) error
}
