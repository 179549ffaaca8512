package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/skillforge/backend/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, title, description, preview, owner_id
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	var preview sql.NullString
	var ownerID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&preview,
		&ownerID,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	course.Preview = preview.String
	if ownerID.Valid {
		owner := int(ownerID.Int64)
		course.OwnerID = &owner
	}

	return &course, nil
}

// GetDetail retrieves a course with its lesson count and the subscription
// flag of the requesting user. Nested lessons are loaded separately.
func (r *courseRepository) GetDetail(ctx context.Context, id, userID int) (*models.CourseDetailResponse, error) {
	query := `
		SELECT
			c.id,
			c.title,
			c.description,
			c.preview,
			COUNT(DISTINCT l.id) as lessons_count,
			EXISTS(SELECT 1 FROM subscriptions s WHERE s.course_id = c.id AND s.user_id = ?) as subscribed
		FROM courses c
		LEFT JOIN lessons l ON l.course_id = c.id
		WHERE c.id = ?
		GROUP BY c.id, c.title, c.description, c.preview
		LIMIT 1
	`

	var detail models.CourseDetailResponse
	var preview sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID, id).Scan(
		&detail.ID,
		&detail.Title,
		&detail.Description,
		&preview,
		&detail.LessonsCount,
		&detail.Subscribed,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course detail: %w", err)
	}

	detail.Preview = preview.String
	return &detail, nil
}

// GetAll retrieves courses with pagination, each with its lesson count
func (r *courseRepository) GetAll(ctx context.Context, page, count int) ([]models.CourseListItem, error) {
	offset := (page - 1) * count

	query := `
		SELECT
			c.id,
			c.title,
			COUNT(DISTINCT l.id) as lessons_count
		FROM courses c
		LEFT JOIN lessons l ON l.course_id = c.id
		GROUP BY c.id, c.title
		ORDER BY c.id
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, count, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.CourseListItem
	for rows.Next() {
		var course models.CourseListItem
		err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.LessonsCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// CountAll returns the total number of courses
func (r *courseRepository) CountAll(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM courses").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return total, nil
}

// Create creates a new course
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, description, preview, owner_id)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Title,
		course.Description,
		nullableString(course.Preview),
		nullableInt(course.OwnerID),
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	return nil
}

// Update updates a course (partial update)
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	var setParts []string
	var args []any

	if course.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, course.Title)
	}
	if course.Description != "" {
		setParts = append(setParts, "description = ?")
		args = append(args, course.Description)
	}
	if course.Preview != "" {
		setParts = append(setParts, "preview = ?")
		args = append(args, course.Preview)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE courses
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, course.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course not found")
	}

	return nil
}

// Delete deletes a course by ID; lessons cascade with it
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM courses WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("course not found")
	}

	return nil
}
