package tasks

import (
	"encoding/json"

	"stayease/models"

	"github.com/hibiken/asynq"
)

// Task type names routed by the worker mux.
const (
	TypeInvoiceReminder = "invoice:reminder"
	TypeOverdueSweep    = "invoice:overdue_sweep"
)

// NewInvoiceReminderTask builds a due-date reminder task for one invoice.
func NewInvoiceReminderTask(payload models.InvoiceReminderPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeInvoiceReminder, b), nil
}

// NewOverdueSweepTask builds the task that flips past-due invoices to overdue.
func NewOverdueSweepTask() *asynq.Task {
	return asynq.NewTask(TypeOverdueSweep, nil)
}
