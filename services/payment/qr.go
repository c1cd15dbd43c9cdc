package payment

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"stayease/models"

	qrcode "github.com/skip2/go-qrcode"
)

// qrImageSize is the rendered QR edge length in pixels.
const qrImageSize = 400

// BuildTransferPayload encodes the receiving account and amount into the
// pipe-delimited VietQR transfer string scanned by banking apps.
func BuildTransferPayload(bank models.BankAccount, amount float64, description string) string {
	return strings.Join([]string{
		bank.BankID,
		bank.AccountNo,
		bank.AccountName,
		FormatAmount(amount),
		description,
	}, "|")
}

// TransferDescription builds the free-text transfer note the resident's bank
// carries through to the gateway, e.g. "STAYEASE INV-0001 500000".
func TransferDescription(invoiceNumber string, amount float64) string {
	return fmt.Sprintf("STAYEASE %s %s", invoiceNumber, FormatAmount(amount))
}

// RenderQRDataURL renders the payload as a 400px medium error-correction QR
// PNG and returns it as an embeddable data URL.
func RenderQRDataURL(payload string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR payload: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// FormatAmount renders an amount without a trailing fractional part when it
// is a whole number, matching what banking apps display for VND.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
