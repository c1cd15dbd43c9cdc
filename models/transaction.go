package models

import "time"

// Transaction statuses.
const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionFailed    = "failed"
)

// Transaction is one payment attempt tied to an invoice. An invoice may
// accumulate several attempts but only one should reach "completed". The
// transaction code is the correlation key between a QR transfer and this
// record, enforced unique by index.
type Transaction struct {
	ID              string    `bson:"id" json:"id"`
	InvoiceID       string    `bson:"invoice_id" json:"invoiceId"`
	UserID          string    `bson:"user_id" json:"userId"`
	PaymentGateway  string    `bson:"payment_gateway" json:"paymentGateway"` // e.g. "vietqr", "bank_transfer"
	TransactionCode string    `bson:"transaction_code" json:"transactionCode"`
	AmountPaid      float64   `bson:"amount_paid" json:"amountPaid"`
	Status          string    `bson:"status" json:"status"`
	GatewayResponse string    `bson:"gateway_response,omitempty" json:"gatewayResponse,omitempty"`
	PaymentDate     time.Time `bson:"payment_date" json:"paymentDate"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
