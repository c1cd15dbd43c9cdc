package models

// InvoiceReminderPayload is the asynq task payload for a due-date reminder push.
type InvoiceReminderPayload struct {
	InvoiceID     string  `json:"invoiceId"`
	UserID        string  `json:"userId"`
	InvoiceNumber string  `json:"invoiceNumber"`
	Amount        float64 `json:"amount"`
	DueDate       string  `json:"dueDate"`
}
