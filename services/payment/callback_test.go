package payment

import (
	"context"
	"testing"

	"stayease/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessCallbackSuccess(t *testing.T) {
	svc, invRepo, txnRepo, notifier := newTestService(pendingInvoice())
	ctx := context.Background()

	qr, err := svc.GenerateQR(ctx, resident(), "inv-1", "")
	require.NoError(t, err)

	err = svc.ProcessCallback(ctx, models.PaymentCallback{
		TransactionCode: qr.TransactionCode,
		Amount:          500000,
		Status:          models.CallbackSuccess,
		GatewayResponse: `{"bank_txn":"abc123"}`,
	})
	require.NoError(t, err)

	inv, err := invRepo.GetByID("inv-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, inv.Status)

	txn, err := txnRepo.GetByCode(qr.TransactionCode)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionCompleted, txn.Status)
	assert.Equal(t, `{"bank_txn":"abc123"}`, txn.GatewayResponse)
	assert.Equal(t, []string{"user-1"}, notifier.sent)
}

func TestProcessCallbackFailureLeavesInvoiceUntouched(t *testing.T) {
	svc, invRepo, txnRepo, _ := newTestService(pendingInvoice())
	ctx := context.Background()

	qr, err := svc.GenerateQR(ctx, resident(), "inv-1", "")
	require.NoError(t, err)

	err = svc.ProcessCallback(ctx, models.PaymentCallback{
		TransactionCode: qr.TransactionCode,
		Amount:          500000,
		Status:          models.CallbackFailed,
		GatewayResponse: `{"reason":"insufficient funds"}`,
	})
	require.NoError(t, err)

	inv, err := invRepo.GetByID("inv-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePending, inv.Status)

	txn, err := txnRepo.GetByCode(qr.TransactionCode)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionFailed, txn.Status)
}

func TestProcessCallbackUnknownCode(t *testing.T) {
	svc, _, _, _ := newTestService(pendingInvoice())

	err := svc.ProcessCallback(context.Background(), models.PaymentCallback{
		TransactionCode: "STE-20250309-ZZZZZZ",
		Amount:          500000,
		Status:          models.CallbackSuccess,
	})
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestProcessCallbackValidation(t *testing.T) {
	svc, _, _, _ := newTestService(pendingInvoice())
	ctx := context.Background()

	cases := []models.PaymentCallback{
		{Amount: 500000, Status: models.CallbackSuccess},
		{TransactionCode: "STE-20250309-AAAAAA", Status: models.CallbackSuccess},
		{TransactionCode: "STE-20250309-AAAAAA", Amount: -1, Status: models.CallbackSuccess},
		{TransactionCode: "STE-20250309-AAAAAA", Amount: 500000},
	}
	for _, cb := range cases {
		assert.ErrorIs(t, svc.ProcessCallback(ctx, cb), ErrInvalidCallback)
	}
}

func TestProcessCallbackDuplicateSuccess(t *testing.T) {
	svc, _, txnRepo, _ := newTestService(pendingInvoice())
	ctx := context.Background()

	qr, err := svc.GenerateQR(ctx, resident(), "inv-1", "")
	require.NoError(t, err)

	cb := models.PaymentCallback{
		TransactionCode: qr.TransactionCode,
		Amount:          500000,
		Status:          models.CallbackSuccess,
	}
	require.NoError(t, svc.ProcessCallback(ctx, cb))

	err = svc.ProcessCallback(ctx, cb)
	assert.ErrorIs(t, err, ErrInvoiceAlreadyPaid)
	assert.Equal(t, 1, txnRepo.completedCount("inv-1"))
}
