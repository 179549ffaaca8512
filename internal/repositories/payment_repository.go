package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/skillforge/backend/internal/models"
)

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB) *paymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// Create persists a payment row; session id and payment link are empty at
// this point and the status is "created"
func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (user_id, course_id, lesson_id, amount, method, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		payment.UserID,
		nullableInt(payment.CourseID),
		nullableInt(payment.LessonID),
		payment.Amount,
		payment.Method,
		payment.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	payment.ID = int(id)
	return nil
}

// GetByID retrieves a payment by its ID
func (r *paymentRepository) GetByID(ctx context.Context, id int) (*models.Payment, error) {
	query := `
		SELECT id, user_id, course_id, lesson_id, amount, method, payment_date, session_id, payment_link, status
		FROM payments
		WHERE id = ?
		LIMIT 1
	`

	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment by id: %w", err)
	}

	return payment, nil
}

// UpdateProviderSession stores the provider session id and payment link and
// moves the payment to the given status
func (r *paymentRepository) UpdateProviderSession(ctx context.Context, id int, sessionID, paymentLink string, status models.PaymentStatus) error {
	query := `
		UPDATE payments
		SET session_id = ?, payment_link = ?, status = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, nullableString(sessionID), nullableString(paymentLink), status, id)
	if err != nil {
		return fmt.Errorf("failed to update payment provider session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("payment not found")
	}

	return nil
}

// GetAll retrieves payments matching the filter with pagination
func (r *paymentRepository) GetAll(ctx context.Context, filter *models.PaymentFilter, page, count int) ([]models.Payment, error) {
	whereClause, args := buildPaymentFilter(filter)

	offset := (page - 1) * count

	query := fmt.Sprintf(`
		SELECT id, user_id, course_id, lesson_id, amount, method, payment_date, session_id, payment_link, status
		FROM payments
		%s
		ORDER BY payment_date DESC, id DESC
		LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, count, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return payments, nil
}

// CountAll returns the total number of payments matching the filter
func (r *paymentRepository) CountAll(ctx context.Context, filter *models.PaymentFilter) (int, error) {
	whereClause, args := buildPaymentFilter(filter)

	query := fmt.Sprintf("SELECT COUNT(*) FROM payments %s", whereClause)

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return total, nil
}

// buildPaymentFilter translates the filter fields into a WHERE clause
func buildPaymentFilter(filter *models.PaymentFilter) (string, []any) {
	var whereClauses []string
	var args []any

	if filter != nil {
		if filter.CourseID != nil {
			whereClauses = append(whereClauses, "course_id = ?")
			args = append(args, *filter.CourseID)
		}
		if filter.LessonID != nil {
			whereClauses = append(whereClauses, "lesson_id = ?")
			args = append(args, *filter.LessonID)
		}
		if filter.Method != "" {
			whereClauses = append(whereClauses, "method = ?")
			args = append(args, filter.Method)
		}
		if filter.DateFrom != nil {
			whereClauses = append(whereClauses, "payment_date >= ?")
			args = append(args, *filter.DateFrom)
		}
		if filter.DateTo != nil {
			whereClauses = append(whereClauses, "payment_date <= ?")
			args = append(args, *filter.DateTo)
		}
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	return whereClause, args
}

// scanPayment scans one payment row with its nullable columns
func scanPayment(row rowScanner) (*models.Payment, error) {
	var payment models.Payment
	var courseID, lessonID sql.NullInt64
	var sessionID, paymentLink sql.NullString

	err := row.Scan(
		&payment.ID,
		&payment.UserID,
		&courseID,
		&lessonID,
		&payment.Amount,
		&payment.Method,
		&payment.PaymentDate,
		&sessionID,
		&paymentLink,
		&payment.Status,
	)
	if err != nil {
		return nil, err
	}

	if courseID.Valid {
		id := int(courseID.Int64)
		payment.CourseID = &id
	}
	if lessonID.Valid {
		id := int(lessonID.Int64)
		payment.LessonID = &id
	}
	payment.SessionID = sessionID.String
	payment.PaymentLink = paymentLink.String

	return &payment, nil
}
