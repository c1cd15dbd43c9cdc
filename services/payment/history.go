package payment

import (
	"fmt"

	"stayease/models"
)

// ListForInvoice returns every payment attempt recorded against an invoice,
// newest first. Access control mirrors invoice viewing: the owner or staff.
func (s *DefaultPaymentService) ListForInvoice(principal models.Principal, invoiceID string) ([]models.Transaction, error) {
	inv, err := s.InvoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}
	if inv.UserID != principal.UserID && !principal.IsStaff() {
		return nil, ErrNotInvoiceOwner
	}
	txns, err := s.TransactionRepo.ListByInvoice(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// ListForUser returns a user's payment history, newest first.
func (s *DefaultPaymentService) ListForUser(userID string) ([]models.Transaction, error) {
	txns, err := s.TransactionRepo.ListByUser(userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}
