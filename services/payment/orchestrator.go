package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	invoiceRepo "stayease/database/repository/invoice"
	transactionRepo "stayease/database/repository/transaction"
	"stayease/models"
	"stayease/services/notification"
	"stayease/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GatewayVietQR is the gateway label recorded on QR-initiated attempts.
const GatewayVietQR = "vietqr"

// DefaultPaymentService is the production implementation of PaymentService.
type DefaultPaymentService struct {
	InvoiceRepo     invoiceRepo.InvoiceRepository
	TransactionRepo transactionRepo.TransactionRepository
	Notifier        notification.NotificationService
	Bank            models.BankAccount
	QRExpiry        time.Duration
}

func (s *DefaultPaymentService) expiry() time.Duration {
	if s.QRExpiry <= 0 {
		return 15 * time.Minute
	}
	return s.QRExpiry
}

// loadPayableInvoice fetches the invoice and applies the ownership and
// status guards shared by GenerateQR and ConfirmPayment.
func (s *DefaultPaymentService) loadPayableInvoice(principal models.Principal, invoiceID string) (*models.Invoice, error) {
	inv, err := s.InvoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}
	if inv.UserID != principal.UserID {
		return nil, ErrNotInvoiceOwner
	}
	switch inv.Status {
	case models.InvoicePaid:
		return nil, ErrInvoiceAlreadyPaid
	case models.InvoiceCancelled:
		return nil, ErrInvoiceCancelled
	}
	return inv, nil
}

// GenerateQR builds a VietQR payload for the invoice and persists a pending
// transaction. The returned expiry is 15 minutes from the transaction's
// creation time, or from the call time when a fresh attempt is opened.
func (s *DefaultPaymentService) GenerateQR(ctx context.Context, principal models.Principal, invoiceID, transactionCode string) (*models.QRCodeResponse, error) {
	logger := utils.GetLogger()

	inv, err := s.loadPayableInvoice(principal, invoiceID)
	if err != nil {
		return nil, err
	}

	// Reuse an existing pending attempt when the caller passes its code.
	var txn *models.Transaction
	if transactionCode != "" {
		existing, err := s.TransactionRepo.GetByCode(transactionCode)
		if err != nil {
			return nil, fmt.Errorf("failed to look up transaction: %w", err)
		}
		if existing != nil && existing.InvoiceID == inv.ID && existing.Status == models.TransactionPending {
			txn = existing
		}
	}

	if txn == nil {
		txn = &models.Transaction{
			ID:              uuid.New().String(),
			InvoiceID:       inv.ID,
			UserID:          inv.UserID,
			PaymentGateway:  GatewayVietQR,
			TransactionCode: NewTransactionCode(TransactionCodePrefix),
			AmountPaid:      inv.Amount,
			Status:          models.TransactionPending,
		}
		if err := s.TransactionRepo.Create(txn); err != nil {
			// A duplicate-key error here is a code collision; retry once
			// with a fresh code before giving up.
			txn.TransactionCode = NewTransactionCode(TransactionCodePrefix)
			if err := s.TransactionRepo.Create(txn); err != nil {
				return nil, fmt.Errorf("failed to create pending transaction: %w", err)
			}
		}
		logger.Info("opened payment attempt",
			zap.String("invoiceID", inv.ID),
			zap.String("transactionCode", txn.TransactionCode))
	}

	description := TransferDescription(inv.InvoiceNumber, inv.Amount)
	payload := BuildTransferPayload(s.Bank, inv.Amount, description)
	dataURL, err := RenderQRDataURL(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}

	createdAt := txn.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &models.QRCodeResponse{
		QRDataURL:       dataURL,
		Payload:         payload,
		TransactionCode: txn.TransactionCode,
		Bank:            s.Bank,
		Amount:          inv.Amount,
		Description:     description,
		ExpiresAt:       createdAt.Add(s.expiry()),
	}, nil
}

// ConfirmPayment marks the invoice paid and its transaction completed. The
// invoice-status update and transaction upsert run in one mongo transaction,
// and the status guard inside it serializes concurrent confirms.
func (s *DefaultPaymentService) ConfirmPayment(ctx context.Context, principal models.Principal, invoiceID, gateway, transactionCode string) (*models.Invoice, error) {
	logger := utils.GetLogger()

	inv, err := s.loadPayableInvoice(principal, invoiceID)
	if err != nil {
		return nil, err
	}

	if gateway == "" {
		gateway = GatewayVietQR
	}

	existing, err := s.TransactionRepo.GetByCode(transactionCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up transaction: %w", err)
	}

	now := time.Now()
	txn := existing
	create := false
	if txn == nil {
		// Fallback path: confirmation arrived without a prior QR attempt.
		if transactionCode == "" {
			transactionCode = NewTransactionCode(TransactionCodePrefix)
		}
		txn = &models.Transaction{
			ID:              uuid.New().String(),
			InvoiceID:       inv.ID,
			UserID:          inv.UserID,
			TransactionCode: transactionCode,
		}
		create = true
	} else if txn.InvoiceID != inv.ID {
		return nil, ErrTransactionNotFound
	}
	txn.PaymentGateway = gateway
	txn.AmountPaid = inv.Amount
	txn.Status = models.TransactionCompleted
	txn.PaymentDate = now

	if err := s.TransactionRepo.CompletePayment(ctx, inv.ID, txn, create); err != nil {
		if errors.Is(err, transactionRepo.ErrInvoiceNotPayable) {
			return nil, ErrInvoiceAlreadyPaid
		}
		return nil, fmt.Errorf("failed to complete payment: %w", err)
	}

	inv.Status = models.InvoicePaid
	inv.PaidDate = &now
	inv.UpdatedAt = now

	logger.Info("payment confirmed",
		zap.String("invoiceID", inv.ID),
		zap.String("transactionCode", txn.TransactionCode),
		zap.String("gateway", gateway))

	s.notifyPaid(ctx, inv, txn)
	return inv, nil
}

func (s *DefaultPaymentService) notifyPaid(ctx context.Context, inv *models.Invoice, txn *models.Transaction) {
	if s.Notifier == nil {
		return
	}
	body := fmt.Sprintf("Payment of %s for invoice %s was received.", FormatAmount(inv.Amount), inv.InvoiceNumber)
	data := map[string]string{
		"invoiceId":       inv.ID,
		"invoiceNumber":   inv.InvoiceNumber,
		"transactionCode": txn.TransactionCode,
	}
	if err := s.Notifier.NotifyUser(ctx, inv.UserID, "payment_confirmation", "Payment received", body, data); err != nil {
		utils.GetLogger().Warn("payment notification failed",
			zap.String("invoiceID", inv.ID),
			zap.Error(err))
	}
}
