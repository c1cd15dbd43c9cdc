package models

import "time"

// Invoice statuses.
const (
	InvoicePending   = "pending"
	InvoicePaid      = "paid"
	InvoiceOverdue   = "overdue"
	InvoiceCancelled = "cancelled"
)

// Invoice types.
const (
	InvoiceTypeRent        = "rent"
	InvoiceTypeManagement  = "management"
	InvoiceTypeElectricity = "electricity"
	InvoiceTypeWater       = "water"
	InvoiceTypeParking     = "parking"
	InvoiceTypeOther       = "other"
)

// Invoice is a billable charge owed by a resident for a given apartment
// and period. Invoices are never hard-deleted; cancellation sets the status.
type Invoice struct {
	ID            string     `bson:"id" json:"id"`
	InvoiceNumber string     `bson:"invoice_number" json:"invoiceNumber"` // e.g. "INV-0001"
	UserID        string     `bson:"user_id" json:"userId"`
	ApartmentID   string     `bson:"apartment_id" json:"apartmentId"`
	Type          string     `bson:"type" json:"type"`
	Description   string     `bson:"description,omitempty" json:"description,omitempty"`
	Amount        float64    `bson:"amount" json:"amount"`
	IssueDate     time.Time  `bson:"issue_date" json:"issueDate"`
	DueDate       time.Time  `bson:"due_date" json:"dueDate"`
	Status        string     `bson:"status" json:"status"`
	PaidDate      *time.Time `bson:"paid_date,omitempty" json:"paidDate,omitempty"`
	CreatedAt     time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updatedAt"`
}
