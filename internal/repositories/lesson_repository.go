package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/skillforge/backend/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByID retrieves a lesson by its ID
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT id, course_id, title, description, preview, video_url, owner_id
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	lesson, err := scanLesson(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return lesson, nil
}

// GetByCourseID retrieves all lessons of a course ordered by ID
func (r *lessonRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error) {
	query := `
		SELECT id, course_id, title, description, preview, video_url, owner_id
		FROM lessons
		WHERE course_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, *lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// GetAll retrieves lessons with pagination
func (r *lessonRepository) GetAll(ctx context.Context, page, count int) ([]models.Lesson, error) {
	offset := (page - 1) * count

	query := `
		SELECT id, course_id, title, description, preview, video_url, owner_id
		FROM lessons
		ORDER BY id
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, count, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, *lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// CountAll returns the total number of lessons
func (r *lessonRepository) CountAll(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lessons").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return total, nil
}

// CountByCourseID returns the number of lessons belonging to a course
func (r *lessonRepository) CountByCourseID(ctx context.Context, courseID int) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lessons WHERE course_id = ?", courseID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return total, nil
}

// Create creates a new lesson
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (course_id, title, description, preview, video_url, owner_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		lesson.CourseID,
		lesson.Title,
		lesson.Description,
		nullableString(lesson.Preview),
		nullableString(lesson.VideoURL),
		nullableInt(lesson.OwnerID),
	)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	lesson.ID = int(id)
	return nil
}

// Update updates a lesson (partial update)
func (r *lessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	var setParts []string
	var args []any

	if lesson.Title != "" {
		setParts = append(setParts, "title = ?")
		args = append(args, lesson.Title)
	}
	if lesson.Description != "" {
		setParts = append(setParts, "description = ?")
		args = append(args, lesson.Description)
	}
	if lesson.Preview != "" {
		setParts = append(setParts, "preview = ?")
		args = append(args, lesson.Preview)
	}
	if lesson.VideoURL != "" {
		setParts = append(setParts, "video_url = ?")
		args = append(args, lesson.VideoURL)
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE lessons
		SET %s
		WHERE id = ?
	`, strings.Join(setParts, ", "))

	args = append(args, lesson.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("lesson not found")
	}

	return nil
}

// Delete deletes a lesson by ID
func (r *lessonRepository) Delete(ctx context.Context, id int) error {
	query := "DELETE FROM lessons WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("lesson not found")
	}

	return nil
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanLesson scans one lesson row with its nullable columns
func scanLesson(row rowScanner) (*models.Lesson, error) {
	var lesson models.Lesson
	var preview, videoURL sql.NullString
	var ownerID sql.NullInt64

	err := row.Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Description,
		&preview,
		&videoURL,
		&ownerID,
	)
	if err != nil {
		return nil, err
	}

	lesson.Preview = preview.String
	lesson.VideoURL = videoURL.String
	if ownerID.Valid {
		owner := int(ownerID.Int64)
		lesson.OwnerID = &owner
	}

	return &lesson, nil
}
