package payment

import (
	"context"

	"stayease/models"
)

// PaymentService orchestrates the QR transfer workflow: issuing a scannable
// payload with a pending transaction, and reconciling a confirmation into
// paid/failed states.
type PaymentService interface {
	// GenerateQR builds a VietQR payload for the invoice and persists a
	// pending transaction. Passing a known transaction code reuses that
	// attempt instead of opening a new one.
	GenerateQR(ctx context.Context, principal models.Principal, invoiceID, transactionCode string) (*models.QRCodeResponse, error)
	// ConfirmPayment marks the invoice paid and the correlated transaction
	// completed. A transaction matching the code is updated in place; when
	// none exists a completed transaction is created as a fallback.
	ConfirmPayment(ctx context.Context, principal models.Principal, invoiceID, gateway, transactionCode string) (*models.Invoice, error)
	// ProcessCallback applies a gateway-reported outcome to the transaction
	// matched by code and, on success, to its invoice.
	ProcessCallback(ctx context.Context, cb models.PaymentCallback) error
	// ListForInvoice returns the attempts recorded against an invoice,
	// restricted to the invoice owner and staff.
	ListForInvoice(principal models.Principal, invoiceID string) ([]models.Transaction, error)
	// ListForUser returns a user's payment history.
	ListForUser(userID string) ([]models.Transaction, error)
}
