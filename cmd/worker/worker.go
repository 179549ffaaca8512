package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/skillforge/backend/internal/models"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// NotificationRepository defines the interface for notification repository
type NotificationRepository interface {
	// GetByID retrieves a notification by its ID
	//
	// "id" parameter is used to retrieve a notification by its ID.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Notification, error)
	// UpdateStatus updates the delivery status of a notification
	//
	// "id" parameter is used to update the status of a notification.
	// "status" parameter is used to update the status of a notification.
	// "errorMessage" parameter is used to update the error message of a notification.
	//
	// If some error occurs during data update, the error will be returned.
	UpdateStatus(ctx context.Context, id int, status models.NotificationStatus, errorMessage string) error
}

// Worker handles notification delivery
type Worker struct {
	logger           *zap.Logger
	notificationRepo NotificationRepository
	smtpHost         string
	smtpPort         int
	smtpUsername     string
	smtpPassword     string
	smtpFrom         string
}

// NewWorker creates a new worker instance
func NewWorker(
	logger *zap.Logger,
	notificationRepo NotificationRepository,
	smtpHost string,
	smtpPort int,
	smtpUsername, smtpPassword, smtpFrom string,
) *Worker {
	return &Worker{
		logger:           logger,
		notificationRepo: notificationRepo,
		smtpHost:         smtpHost,
		smtpPort:         smtpPort,
		smtpUsername:     smtpUsername,
		smtpPassword:     smtpPassword,
		smtpFrom:         smtpFrom,
	}
}

// HandleCourseChangedNotification delivers one course-change notification job.
// A returned error makes asynq retry the job, so a partially delivered
// recipient list may be sent again.
func (w *Worker) HandleCourseChangedNotification(ctx context.Context, t *asynq.Task) error {
	// Parse notification ID from payload
	notificationIDStr := string(t.Payload())
	notificationID := 0
	if _, err := fmt.Sscanf(notificationIDStr, "%d", &notificationID); err != nil {
		return fmt.Errorf("failed to parse notification ID: %w", err)
	}

	// Get notification
	notification, err := w.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		// Notification row was deleted before processing, nothing to deliver
		if err.Error() == "notification not found" {
			return nil
		}
		return err
	}

	recipients := notification.RecipientList()
	if len(recipients) == 0 {
		w.notificationRepo.UpdateStatus(ctx, notificationID, models.NotificationStatusFailed, "no recipients")
		return fmt.Errorf("notification has no recipients")
	}

	subject := fmt.Sprintf("Обновление курса #%d", notification.CourseID)

	// Send email to each subscriber
	var failed []string
	for _, recipient := range recipients {
		recipient = strings.TrimSpace(recipient)
		if recipient == "" {
			continue
		}
		if err := w.sendEmail(recipient, subject, notification.Message); err != nil {
			w.logger.Error("failed to send notification email",
				zap.Int("notification_id", notificationID),
				zap.String("recipient", recipient),
				zap.Error(err),
			)
			failed = append(failed, recipient)
		}
	}

	if len(failed) > 0 {
		errorMsg := fmt.Sprintf("failed to deliver to: %s", strings.Join(failed, ";"))
		w.notificationRepo.UpdateStatus(ctx, notificationID, models.NotificationStatusFailed, errorMsg)
		return fmt.Errorf("failed to deliver %d of %d emails", len(failed), len(recipients))
	}

	// Update status to Completed
	if err := w.notificationRepo.UpdateStatus(ctx, notificationID, models.NotificationStatusCompleted, ""); err != nil {
		return err
	}

	w.logger.Info("Notification delivered",
		zap.Int("notification_id", notificationID),
		zap.Int("recipients", len(recipients)),
	)
	return nil
}

// sendEmail sends an email using gopkg.in/mail.v2
func (w *Worker) sendEmail(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", w.smtpFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(w.smtpHost, w.smtpPort, w.smtpUsername, w.smtpPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
