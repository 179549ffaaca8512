package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/skillforge/backend/internal/models"
)

// ErrAlreadySubscribed is returned when a subscription insert hits the
// UNIQUE(user_id, course_id) constraint. Two concurrent toggles can both
// observe "absent"; the constraint is the safety net and the losing insert
// is reported as this error instead of a generic database failure.
var ErrAlreadySubscribed = errors.New("already subscribed")

// mysqlDuplicateEntry is the MySQL error number for duplicate key violations
const mysqlDuplicateEntry = 1062

type subscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *sql.DB) *subscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// GetByUserAndCourse retrieves a subscription row for a (user, course) pair
func (r *subscriptionRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.Subscription, error) {
	query := `
		SELECT id, user_id, course_id
		FROM subscriptions
		WHERE user_id = ? AND course_id = ?
		LIMIT 1
	`

	var sub models.Subscription
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(
		&sub.ID,
		&sub.UserID,
		&sub.CourseID,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("subscription not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}

// Create inserts a subscription row; returns ErrAlreadySubscribed when the
// uniqueness constraint rejects a duplicate pair
func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, course_id)
		VALUES (?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, sub.UserID, sub.CourseID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrAlreadySubscribed
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	sub.ID = int(id)
	return nil
}

// Delete deletes a subscription by ID
func (r *subscriptionRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM subscriptions WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("subscription not found")
	}

	return nil
}

// GetSubscriberEmails retrieves the emails of every user subscribed to a course
func (r *subscriptionRepository) GetSubscriberEmails(ctx context.Context, courseID int) ([]string, error) {
	query := `
		SELECT u.email
		FROM subscriptions s
		JOIN users u ON u.id = s.user_id
		WHERE s.course_id = ?
		ORDER BY u.id
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriber emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber email: %w", err)
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return emails, nil
}
