package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stayease/models"
	"stayease/services/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPaymentService records the callbacks it receives and returns a canned
// error.
type stubPaymentService struct {
	lastCallback models.PaymentCallback
	callbackErr  error
}

func (s *stubPaymentService) GenerateQR(ctx context.Context, principal models.Principal, invoiceID, transactionCode string) (*models.QRCodeResponse, error) {
	return nil, payment.ErrInvoiceNotFound
}

func (s *stubPaymentService) ConfirmPayment(ctx context.Context, principal models.Principal, invoiceID, gateway, transactionCode string) (*models.Invoice, error) {
	return nil, payment.ErrInvoiceNotFound
}

func (s *stubPaymentService) ProcessCallback(ctx context.Context, cb models.PaymentCallback) error {
	s.lastCallback = cb
	return s.callbackErr
}

func (s *stubPaymentService) ListForInvoice(principal models.Principal, invoiceID string) ([]models.Transaction, error) {
	return nil, nil
}

func (s *stubPaymentService) ListForUser(userID string) ([]models.Transaction, error) {
	return nil, nil
}

func callbackRouter(svc payment.PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPaymentHandler(svc)
	r.GET("/api/payment/callback", h.CallbackHandler)
	r.POST("/api/payment/callback", h.CallbackHandler)
	return r
}

func TestCallbackBindsQueryParams(t *testing.T) {
	stub := &stubPaymentService{}
	r := callbackRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/payment/callback?transaction_code=STE-20250309-AAAAAA&amount=500000&status=SUCCESS", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "STE-20250309-AAAAAA", stub.lastCallback.TransactionCode)
	assert.Equal(t, 500000.0, stub.lastCallback.Amount)
	assert.Equal(t, models.CallbackSuccess, stub.lastCallback.Status)
}

func TestCallbackBindsJSONBody(t *testing.T) {
	stub := &stubPaymentService{}
	r := callbackRouter(stub)

	body := `{"transaction_code":"STE-20250309-BBBBBB","amount":250000,"status":"FAILED","gateway_response":"{\"reason\":\"timeout\"}"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payment/callback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "STE-20250309-BBBBBB", stub.lastCallback.TransactionCode)
	assert.Equal(t, models.CallbackFailed, stub.lastCallback.Status)
}

func TestCallbackErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{payment.ErrTransactionNotFound, http.StatusNotFound},
		{payment.ErrInvalidCallback, http.StatusBadRequest},
		{payment.ErrInvoiceNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		stub := &stubPaymentService{callbackErr: tc.err}
		r := callbackRouter(stub)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/payment/callback?transaction_code=STE-20250309-CCCCCC&amount=1&status=SUCCESS", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.code, w.Code)
	}
}

func TestCallbackDuplicateReportsOK(t *testing.T) {
	stub := &stubPaymentService{callbackErr: payment.ErrInvoiceAlreadyPaid}
	r := callbackRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/payment/callback?transaction_code=STE-20250309-DDDDDD&amount=1&status=SUCCESS", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already recorded")
}
