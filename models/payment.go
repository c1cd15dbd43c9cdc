package models

import "time"

// BankAccount is the receiving account encoded into the transfer QR.
type BankAccount struct {
	BankID      string `json:"bankId"`
	AccountNo   string `json:"accountNo"`
	AccountName string `json:"accountName"`
}

// QRCodeResponse is returned by the generate-qr endpoint.
type QRCodeResponse struct {
	QRDataURL       string      `json:"qrDataUrl"` // embedded PNG data URL
	Payload         string      `json:"payload"`
	TransactionCode string      `json:"transactionCode"`
	Bank            BankAccount `json:"bank"`
	Amount          float64     `json:"amount"`
	Description     string      `json:"description"`
	ExpiresAt       time.Time   `json:"expiresAt"`
}

// Callback statuses reported by the payment gateway.
const (
	CallbackSuccess = "SUCCESS"
	CallbackFailed  = "FAILED"
	CallbackPending = "PENDING"
)

// PaymentCallback is the payload delivered by the external gateway, either
// as a POST JSON body or as GET query parameters. No signature field is
// present; the sandbox gateway does not sign its callbacks.
type PaymentCallback struct {
	TransactionCode string  `json:"transaction_code" form:"transaction_code"`
	Amount          float64 `json:"amount" form:"amount"`
	Status          string  `json:"status" form:"status"`
	GatewayResponse string  `json:"gateway_response" form:"gateway_response"`
}
