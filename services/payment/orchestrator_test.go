package payment

import (
	"context"
	"testing"
	"time"

	"stayease/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBank() models.BankAccount {
	return models.BankAccount{
		BankID:      "970436",
		AccountNo:   "0123456789",
		AccountName: "STAYEASE JSC",
	}
}

func pendingInvoice() *models.Invoice {
	return &models.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-0001",
		UserID:        "user-1",
		ApartmentID:   "apt-1",
		Type:          models.InvoiceTypeRent,
		Amount:        500000,
		IssueDate:     time.Now().AddDate(0, 0, -5),
		DueDate:       time.Now().AddDate(0, 0, 10),
		Status:        models.InvoicePending,
	}
}

func newTestService(invoices ...*models.Invoice) (*DefaultPaymentService, *fakeInvoiceRepo, *fakeTransactionRepo, *fakeNotifier) {
	invRepo := newFakeInvoiceRepo(invoices...)
	txnRepo := newFakeTransactionRepo(invRepo)
	notifier := &fakeNotifier{}
	svc := &DefaultPaymentService{
		InvoiceRepo:     invRepo,
		TransactionRepo: txnRepo,
		Notifier:        notifier,
		Bank:            testBank(),
	}
	return svc, invRepo, txnRepo, notifier
}

func resident() models.Principal {
	return models.Principal{UserID: "user-1", Role: models.RoleResident, ApartmentID: "apt-1"}
}

func TestGenerateQROpensPendingTransaction(t *testing.T) {
	svc, _, txnRepo, _ := newTestService(pendingInvoice())

	resp, err := svc.GenerateQR(context.Background(), resident(), "inv-1", "")
	require.NoError(t, err)

	assert.Regexp(t, codePattern, resp.TransactionCode)
	assert.Equal(t, 500000.0, resp.Amount)
	assert.Equal(t, "STAYEASE INV-0001 500000", resp.Description)
	assert.Contains(t, resp.Payload, "970436|0123456789|STAYEASE JSC|500000|")
	assert.Contains(t, resp.QRDataURL, "data:image/png;base64,")

	txn, err := txnRepo.GetByCode(resp.TransactionCode)
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, models.TransactionPending, txn.Status)
	assert.Equal(t, GatewayVietQR, txn.PaymentGateway)
}

func TestGenerateQRExpiryFifteenMinutes(t *testing.T) {
	svc, _, _, _ := newTestService(pendingInvoice())

	before := time.Now()
	resp, err := svc.GenerateQR(context.Background(), resident(), "inv-1", "")
	require.NoError(t, err)

	want := before.Add(15 * time.Minute)
	assert.WithinDuration(t, want, resp.ExpiresAt, time.Second)
}

func TestGenerateQRReusesPendingAttempt(t *testing.T) {
	svc, _, _, _ := newTestService(pendingInvoice())

	first, err := svc.GenerateQR(context.Background(), resident(), "inv-1", "")
	require.NoError(t, err)

	second, err := svc.GenerateQR(context.Background(), resident(), "inv-1", first.TransactionCode)
	require.NoError(t, err)
	assert.Equal(t, first.TransactionCode, second.TransactionCode)
}

func TestGenerateQRRetriesOnCodeCollision(t *testing.T) {
	svc, _, txnRepo, _ := newTestService(pendingInvoice())
	txnRepo.createErr = assert.AnError

	resp, err := svc.GenerateQR(context.Background(), resident(), "inv-1", "")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.TransactionCode)
}

func TestGenerateQRGuards(t *testing.T) {
	paid := pendingInvoice()
	paid.ID = "inv-paid"
	paid.Status = models.InvoicePaid

	cancelled := pendingInvoice()
	cancelled.ID = "inv-cancelled"
	cancelled.Status = models.InvoiceCancelled

	svc, _, txnRepo, _ := newTestService(pendingInvoice(), paid, cancelled)
	ctx := context.Background()

	_, err := svc.GenerateQR(ctx, resident(), "inv-missing", "")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	other := models.Principal{UserID: "user-2", Role: models.RoleResident}
	_, err = svc.GenerateQR(ctx, other, "inv-1", "")
	assert.ErrorIs(t, err, ErrNotInvoiceOwner)

	_, err = svc.GenerateQR(ctx, resident(), "inv-paid", "")
	assert.ErrorIs(t, err, ErrInvoiceAlreadyPaid)

	_, err = svc.GenerateQR(ctx, resident(), "inv-cancelled", "")
	assert.ErrorIs(t, err, ErrInvoiceCancelled)

	// None of the rejected calls opened a transaction.
	assert.Empty(t, txnRepo.transactions)
}

func TestConfirmPaymentCompletesAttempt(t *testing.T) {
	svc, invRepo, txnRepo, notifier := newTestService(pendingInvoice())
	ctx := context.Background()

	qr, err := svc.GenerateQR(ctx, resident(), "inv-1", "")
	require.NoError(t, err)

	inv, err := svc.ConfirmPayment(ctx, resident(), "inv-1", "", qr.TransactionCode)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, inv.Status)
	require.NotNil(t, inv.PaidDate)

	stored, err := invRepo.GetByID("inv-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, stored.Status)

	txn, err := txnRepo.GetByCode(qr.TransactionCode)
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, models.TransactionCompleted, txn.Status)
	assert.Equal(t, 500000.0, txn.AmountPaid)

	assert.Equal(t, []string{"user-1"}, notifier.sent)
}

func TestConfirmPaymentWithoutPriorAttempt(t *testing.T) {
	svc, _, txnRepo, _ := newTestService(pendingInvoice())

	inv, err := svc.ConfirmPayment(context.Background(), resident(), "inv-1", "bank_transfer", "")
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, inv.Status)
	assert.Equal(t, 1, txnRepo.completedCount("inv-1"))
}

func TestConfirmPaymentTwiceFailsSecond(t *testing.T) {
	svc, _, txnRepo, _ := newTestService(pendingInvoice())
	ctx := context.Background()

	qr, err := svc.GenerateQR(ctx, resident(), "inv-1", "")
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(ctx, resident(), "inv-1", "", qr.TransactionCode)
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(ctx, resident(), "inv-1", "", qr.TransactionCode)
	assert.ErrorIs(t, err, ErrInvoiceAlreadyPaid)

	// The invoice never accumulates a second completed transaction.
	assert.Equal(t, 1, txnRepo.completedCount("inv-1"))
}

func TestConfirmPaymentOverdueInvoice(t *testing.T) {
	overdue := pendingInvoice()
	overdue.Status = models.InvoiceOverdue
	svc, _, _, _ := newTestService(overdue)

	inv, err := svc.ConfirmPayment(context.Background(), resident(), "inv-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, inv.Status)
}

func TestListForInvoiceRequiresOwnerOrStaff(t *testing.T) {
	svc, _, _, _ := newTestService(pendingInvoice())
	ctx := context.Background()

	_, err := svc.GenerateQR(ctx, resident(), "inv-1", "")
	require.NoError(t, err)

	txns, err := svc.ListForInvoice(resident(), "inv-1")
	require.NoError(t, err)
	assert.Len(t, txns, 1)

	staff := models.Principal{UserID: "staff-1", Role: models.RoleStaff}
	_, err = svc.ListForInvoice(staff, "inv-1")
	assert.NoError(t, err)

	other := models.Principal{UserID: "user-2", Role: models.RoleResident}
	_, err = svc.ListForInvoice(other, "inv-1")
	assert.ErrorIs(t, err, ErrNotInvoiceOwner)
}
