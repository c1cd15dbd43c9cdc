package invoice

import (
	"fmt"
	"time"

	apartmentRepo "stayease/database/repository/apartment"
	invoiceRepo "stayease/database/repository/invoice"
	"stayease/models"
	"stayease/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CreateInput is the admin payload for issuing an invoice.
type CreateInput struct {
	UserID      string    `json:"userId" binding:"required"`
	ApartmentID string    `json:"apartmentId" binding:"required"`
	Type        string    `json:"type" binding:"required"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	IssueDate   time.Time `json:"issueDate"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
}

// InvoiceService manages invoice issuing and lifecycle short of payment,
// which belongs to the payment orchestrator.
type InvoiceService interface {
	GetByID(id string) (*models.Invoice, error)
	// ListForUser returns a user's invoices, optionally filtered by status.
	ListForUser(userID, status string, skip, limit int64) ([]models.Invoice, error)
	// ListAll returns invoices across users (staff surface).
	ListAll(status string, skip, limit int64) ([]models.Invoice, error)
	// DueSoon returns pending invoices due within the given number of days.
	DueSoon(days int) ([]models.Invoice, error)
	// RecentlyPaid returns paid invoices newest-paid first for activity feeds.
	RecentlyPaid(limit int64) ([]models.Invoice, error)
	Create(in CreateInput) (*models.Invoice, error)
	// Cancel sets the status to cancelled; invoices are never hard-deleted.
	Cancel(id string) error
	// SweepOverdue flips pending invoices past their due date to overdue.
	SweepOverdue() (int64, error)
}

// DefaultInvoiceService is the production implementation.
type DefaultInvoiceService struct {
	Repo       invoiceRepo.InvoiceRepository
	Apartments apartmentRepo.ApartmentRepository
}

func (s *DefaultInvoiceService) GetByID(id string) (*models.Invoice, error) {
	inv, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return inv, nil
}

func (s *DefaultInvoiceService) ListForUser(userID, status string, skip, limit int64) ([]models.Invoice, error) {
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}
	return s.Repo.List(filter, skip, limit)
}

func (s *DefaultInvoiceService) ListAll(status string, skip, limit int64) ([]models.Invoice, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.Repo.List(filter, skip, limit)
}

func (s *DefaultInvoiceService) DueSoon(days int) ([]models.Invoice, error) {
	if days <= 0 {
		days = 3
	}
	return s.Repo.DueWithin(days)
}

func (s *DefaultInvoiceService) RecentlyPaid(limit int64) ([]models.Invoice, error) {
	return s.Repo.PaidSorted(limit)
}

// Create issues an invoice against a resident and apartment.
func (s *DefaultInvoiceService) Create(in CreateInput) (*models.Invoice, error) {
	if _, err := s.Apartments.GetByID(in.ApartmentID); err != nil {
		return nil, fmt.Errorf("apartment not found: %w", err)
	}

	number, err := s.Repo.NextInvoiceNumber()
	if err != nil {
		return nil, err
	}

	issueDate := in.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}
	if in.DueDate.Before(issueDate) {
		return nil, fmt.Errorf("due date precedes issue date")
	}

	inv := &models.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: number,
		UserID:        in.UserID,
		ApartmentID:   in.ApartmentID,
		Type:          in.Type,
		Description:   in.Description,
		Amount:        in.Amount,
		IssueDate:     issueDate,
		DueDate:       in.DueDate,
		Status:        models.InvoicePending,
	}
	if err := s.Repo.Create(inv); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("invoice issued",
		zap.String("invoiceNumber", inv.InvoiceNumber),
		zap.String("userID", inv.UserID),
		zap.Float64("amount", inv.Amount))
	return inv, nil
}

// Cancel sets the status to cancelled; invoices are never hard-deleted.
func (s *DefaultInvoiceService) Cancel(id string) error {
	inv, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("invoice not found: %w", err)
	}
	if inv.Status == models.InvoicePaid {
		return fmt.Errorf("a paid invoice cannot be cancelled")
	}
	if inv.Status == models.InvoiceCancelled {
		return nil
	}
	return s.Repo.UpdateSetDocument(id, bson.M{"status": models.InvoiceCancelled})
}

// SweepOverdue flips pending invoices past their due date to overdue.
func (s *DefaultInvoiceService) SweepOverdue() (int64, error) {
	n, err := s.Repo.MarkOverdue(time.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		utils.GetLogger().Info("marked invoices overdue", zap.Int64("count", n))
	}
	return n, nil
}
