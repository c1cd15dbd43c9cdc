package invoiceRepo

import (
	"time"

	"stayease/models"

	"go.mongodb.org/mongo-driver/bson"
)

// InvoiceRepository defines methods for invoice data access.
type InvoiceRepository interface {
	GetByID(id string) (*models.Invoice, error)
	// List retrieves invoices matching the filter, newest issue date first,
	// with skip/limit paging.
	List(filter bson.M, skip, limit int64) ([]models.Invoice, error)
	// DueWithin retrieves pending invoices whose due date falls within the
	// given number of days from now.
	DueWithin(days int) ([]models.Invoice, error)
	// PaidSorted retrieves paid invoices sorted by paid date descending.
	PaidSorted(limit int64) ([]models.Invoice, error)
	Create(invoice *models.Invoice) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	// MarkOverdue flips pending invoices past their due date to overdue and
	// returns how many were updated.
	MarkOverdue(now time.Time) (int64, error)
	// NextInvoiceNumber reserves the next sequential invoice number.
	NextInvoiceNumber() (string, error)
	// CountByStatus returns invoice counts grouped by status.
	CountByStatus() (map[string]int64, error)
	// RevenueSince sums paid invoice amounts with a paid date at or after t.
	RevenueSince(t time.Time) (float64, error)
}
