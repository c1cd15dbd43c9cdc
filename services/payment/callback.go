package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	transactionRepo "stayease/database/repository/transaction"
	"stayease/models"
	"stayease/utils"

	"go.uber.org/zap"
)

// ProcessCallback applies a gateway-reported outcome. The caller is not
// authenticated and the payload carries no signature; the sandbox gateway
// does not sign callbacks, so the code is trusted as the correlation key.
func (s *DefaultPaymentService) ProcessCallback(ctx context.Context, cb models.PaymentCallback) error {
	logger := utils.GetLogger()

	if cb.TransactionCode == "" || cb.Amount <= 0 || cb.Status == "" {
		return ErrInvalidCallback
	}

	txn, err := s.TransactionRepo.GetByCode(cb.TransactionCode)
	if err != nil {
		return fmt.Errorf("failed to look up transaction: %w", err)
	}
	if txn == nil {
		return ErrTransactionNotFound
	}

	inv, err := s.InvoiceRepo.GetByID(txn.InvoiceID)
	if err != nil {
		return ErrInvoiceNotFound
	}

	if cb.Status != models.CallbackSuccess {
		// Any non-success report fails the attempt; the invoice is untouched.
		logger.Info("payment callback reported failure",
			zap.String("transactionCode", cb.TransactionCode),
			zap.String("status", cb.Status))
		if txn.Status == models.TransactionPending {
			if err := s.TransactionRepo.MarkFailed(cb.TransactionCode, cb.GatewayResponse); err != nil {
				return fmt.Errorf("failed to mark transaction failed: %w", err)
			}
		}
		return nil
	}

	if inv.Status == models.InvoicePaid {
		return ErrInvoiceAlreadyPaid
	}

	txn.PaymentGateway = nonEmpty(txn.PaymentGateway, GatewayVietQR)
	txn.AmountPaid = cb.Amount
	txn.GatewayResponse = cb.GatewayResponse
	txn.Status = models.TransactionCompleted
	txn.PaymentDate = time.Now()

	if err := s.TransactionRepo.CompletePayment(ctx, inv.ID, txn, false); err != nil {
		if errors.Is(err, transactionRepo.ErrInvoiceNotPayable) {
			return ErrInvoiceAlreadyPaid
		}
		return fmt.Errorf("failed to complete payment from callback: %w", err)
	}

	logger.Info("payment callback reconciled",
		zap.String("invoiceID", inv.ID),
		zap.String("transactionCode", cb.TransactionCode))

	inv.Status = models.InvoicePaid
	s.notifyPaid(ctx, inv, txn)
	return nil
}

func nonEmpty(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
