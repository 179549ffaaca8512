package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/skillforge/backend/internal/models"
)

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB) *notificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create inserts a notification job row
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (course_id, recipients, message, status)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		notification.CourseID,
		notification.Recipients,
		notification.Message,
		models.NotificationStatusEnqueued,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	notification.ID = int(id)
	notification.Status = models.NotificationStatusEnqueued
	return nil
}

// GetByID retrieves a notification by its ID
func (r *notificationRepository) GetByID(ctx context.Context, id int) (*models.Notification, error) {
	query := `
		SELECT id, course_id, recipients, message, created_at, status, error
		FROM notifications
		WHERE id = ?
		LIMIT 1
	`

	var notification models.Notification
	var errorMessage sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&notification.ID,
		&notification.CourseID,
		&notification.Recipients,
		&notification.Message,
		&notification.CreatedAt,
		&notification.Status,
		&errorMessage,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("notification not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification by id: %w", err)
	}

	notification.Error = errorMessage.String
	return &notification, nil
}

// UpdateStatus updates the delivery status of a notification
func (r *notificationRepository) UpdateStatus(ctx context.Context, id int, status models.NotificationStatus, errorMessage string) error {
	query := `
		UPDATE notifications
		SET status = ?, error = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, nullableString(errorMessage), id)
	if err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("notification not found")
	}

	return nil
}
