package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"stayease/config"
	"stayease/models"
	"stayease/services/invoice"
	"stayease/services/notification"
	"stayease/services/payment"
	"stayease/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

// reminderWindowDays is how far ahead of the due date residents are nudged.
const reminderWindowDays = 3

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitInvoiceWorker runs the async worker in the background. It handles the
// per-invoice reminder pushes and the daily overdue sweep.
func InitInvoiceWorker(invoiceSvc invoice.InvoiceService, notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeInvoiceReminder, handleInvoiceReminder(notifSvc))
	mux.HandleFunc(tasks.TypeOverdueSweep, handleOverdueSweep(invoiceSvc))

	go func() {
		log.Println("[InvoiceWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[InvoiceWorker] failed to start worker: %v", err)
		}
	}()
}

// StartScheduler registers the daily jobs: the overdue sweep and the
// due-soon reminder scan. Returns the cron so main can stop it on shutdown.
func StartScheduler(invoiceSvc invoice.InvoiceService) *cron.Cron {
	client := asynq.NewClient(redisOpts())

	c := cron.New()
	// Every day at 08:00 server time.
	_, err := c.AddFunc("0 8 * * *", func() {
		if _, err := client.Enqueue(tasks.NewOverdueSweepTask()); err != nil {
			log.Printf("[InvoiceScheduler] failed to enqueue overdue sweep: %v", err)
		}
		enqueueReminders(client, invoiceSvc)
	})
	if err != nil {
		log.Fatalf("[InvoiceScheduler] invalid schedule: %v", err)
	}
	c.Start()
	return c
}

// enqueueReminders scans pending invoices due within the reminder window and
// enqueues one reminder task per invoice.
func enqueueReminders(client *asynq.Client, invoiceSvc invoice.InvoiceService) {
	due, err := invoiceSvc.DueSoon(reminderWindowDays)
	if err != nil {
		log.Printf("[InvoiceScheduler] due-soon scan failed: %v", err)
		return
	}
	for _, inv := range due {
		task, err := tasks.NewInvoiceReminderTask(models.InvoiceReminderPayload{
			InvoiceID:     inv.ID,
			UserID:        inv.UserID,
			InvoiceNumber: inv.InvoiceNumber,
			Amount:        inv.Amount,
			DueDate:       inv.DueDate.Format("2006-01-02"),
		})
		if err != nil {
			log.Printf("[InvoiceScheduler] failed to build reminder task: %v", err)
			continue
		}
		if _, err := client.Enqueue(task); err != nil {
			log.Printf("[InvoiceScheduler] failed to enqueue reminder for %s: %v", inv.InvoiceNumber, err)
		}
	}
	if len(due) > 0 {
		log.Printf("[InvoiceScheduler] enqueued %d invoice reminders", len(due))
	}
}

func handleInvoiceReminder(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.InvoiceReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[InvoiceReminder] invalid payload: %v", err)
			return err
		}

		body := fmt.Sprintf("Invoice %s (%s) is due on %s.", p.InvoiceNumber, payment.FormatAmount(p.Amount), p.DueDate)
		data := map[string]string{
			"invoiceId":     p.InvoiceID,
			"invoiceNumber": p.InvoiceNumber,
			"dueDate":       p.DueDate,
		}
		if err := notifSvc.NotifyUser(ctx, p.UserID, "invoice_reminder", "Upcoming payment", body, data); err != nil {
			log.Printf("[InvoiceReminder] failed to notify user %s: %v", p.UserID, err)
			return err
		}
		return nil
	}
}

func handleOverdueSweep(invoiceSvc invoice.InvoiceService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := invoiceSvc.SweepOverdue()
		if err != nil {
			log.Printf("[OverdueSweep] sweep failed: %v", err)
			return err
		}
		log.Printf("[OverdueSweep] marked %d invoices overdue", n)
		return nil
	}
}
