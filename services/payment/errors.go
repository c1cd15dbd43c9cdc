package payment

import "errors"

// Service-level errors mapped to the HTTP taxonomy by the handlers.
var (
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrNotInvoiceOwner     = errors.New("invoice does not belong to the requesting user")
	ErrInvoiceAlreadyPaid  = errors.New("invoice is already paid")
	ErrInvoiceCancelled    = errors.New("invoice is cancelled")
	ErrTransactionNotFound = errors.New("no transaction matches the given code")
	ErrInvalidCallback     = errors.New("callback is missing transaction code, amount, or status")
)
