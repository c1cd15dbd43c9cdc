package payment

import (
	"strings"
	"testing"

	"stayease/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTransferPayload(t *testing.T) {
	bank := models.BankAccount{
		BankID:      "970436",
		AccountNo:   "0123456789",
		AccountName: "STAYEASE JSC",
	}

	payload := BuildTransferPayload(bank, 500000, "STAYEASE INV-0001 500000")
	assert.Equal(t, "970436|0123456789|STAYEASE JSC|500000|STAYEASE INV-0001 500000", payload)
}

func TestTransferDescription(t *testing.T) {
	assert.Equal(t, "STAYEASE INV-0001 500000", TransferDescription("INV-0001", 500000))
	// Fractional amounts keep their decimals.
	assert.Equal(t, "STAYEASE INV-0042 1250.5", TransferDescription("INV-0042", 1250.5))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "500000", FormatAmount(500000))
	assert.Equal(t, "0.5", FormatAmount(0.5))
}

func TestRenderQRDataURL(t *testing.T) {
	dataURL, err := RenderQRDataURL("970436|0123456789|STAYEASE JSC|500000|STAYEASE INV-0001 500000")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
	assert.Greater(t, len(dataURL), len("data:image/png;base64,"))
}
