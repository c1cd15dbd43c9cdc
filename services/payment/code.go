package payment

import (
	"crypto/rand"
	"fmt"
	"time"
)

// TransactionCodePrefix is the default prefix for generated payment references.
const TransactionCodePrefix = "STE"

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewTransactionCode produces a human-readable payment reference of the form
// PREFIX-YYYYMMDD-RANDOM6. Uniqueness is probabilistic; the unique index on
// transaction_code catches the rare collision at insert time.
func NewTransactionCode(prefix string) string {
	return newTransactionCodeAt(prefix, time.Now())
}

func newTransactionCodeAt(prefix string, t time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform entropy source is broken;
		// fall back to a time-derived suffix rather than blocking payment.
		for i := range buf {
			buf[i] = byte(t.UnixNano() >> (i * 8))
		}
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, t.Format("20060102"), string(buf))
}
