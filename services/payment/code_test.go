package payment

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var codePattern = regexp.MustCompile(`^STE-\d{8}-[0-9A-Z]{6}$`)

func TestNewTransactionCodeFormat(t *testing.T) {
	code := NewTransactionCode(TransactionCodePrefix)
	assert.Regexp(t, codePattern, code)
}

func TestNewTransactionCodeDatePart(t *testing.T) {
	at := time.Date(2025, 3, 9, 10, 30, 0, 0, time.UTC)
	code := newTransactionCodeAt("STE", at)
	assert.Regexp(t, `^STE-20250309-[0-9A-Z]{6}$`, code)
}

func TestNewTransactionCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[NewTransactionCode(TransactionCodePrefix)] = true
	}
	// 100 draws over a 36^6 space should never collide.
	assert.Len(t, seen, 100)
}
