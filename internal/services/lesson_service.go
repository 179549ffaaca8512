package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillforge/backend/internal/access"
	"github.com/skillforge/backend/internal/models"
	"go.uber.org/zap"
)

// allowedVideoHost is the only video provider lessons may link to
const allowedVideoHost = "https://www.youtube.com/"

// LessonRepository is the interface that wraps methods for Lesson table data access
type LessonRepository interface {
	// Method GetByID retrieves a lesson by ID.
	//
	// "id" parameter is used to retrieve a lesson by ID.
	//
	// If lesson with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	// Method GetAll retrieves a page of lessons.
	GetAll(ctx context.Context, page, count int) ([]models.Lesson, error)
	// Method CountAll returns the total number of lessons.
	CountAll(ctx context.Context) (int, error)
	// Method Create inserts a new lesson and sets its ID.
	Create(ctx context.Context, lesson *models.Lesson) error
	// Method Update applies a partial update to a lesson.
	Update(ctx context.Context, lesson *models.Lesson) error
	// Method Delete deletes a lesson by ID.
	Delete(ctx context.Context, id int) error
}

// CourseExistsRepository wraps the course lookup lesson creation needs
type CourseExistsRepository interface {
	// Method GetByID retrieves a course by ID.
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

// lessonService implements lesson catalog operations
type lessonService struct {
	repo       LessonRepository
	courseRepo CourseExistsRepository
	logger     *zap.Logger
}

// NewLessonService creates a new lesson service
func NewLessonService(repo LessonRepository, courseRepo CourseExistsRepository, logger *zap.Logger) *lessonService {
	return &lessonService{
		repo:       repo,
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// Create creates a new lesson owned by the actor
func (s *lessonService) Create(ctx context.Context, actor access.Actor, req *models.CreateLessonRequest) (int, error) {
	if err := access.Check(actor, access.EntityLesson, access.ActionCreate, nil); err != nil {
		return 0, err
	}

	if err := s.checkCreateLessonValidation(ctx, req); err != nil {
		return 0, err
	}

	ownerID := actor.ID
	lesson := &models.Lesson{
		CourseID:    req.CourseID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Preview:     strings.TrimSpace(req.Preview),
		VideoURL:    strings.TrimSpace(req.VideoURL),
		OwnerID:     &ownerID,
	}

	if err := s.repo.Create(ctx, lesson); err != nil {
		return 0, fmt.Errorf("failed to create lesson: %w", err)
	}

	return lesson.ID, nil
}

// checkCreateLessonValidation checks the validity of the lesson creation request
//
// There is no need for check parts to wait each other, so the checks run in
// parallel goroutines.
func (s *lessonService) checkCreateLessonValidation(ctx context.Context, req *models.CreateLessonRequest) error {
	errChan := make(chan error, 3)

	// Check that the parent course exists
	go func() {
		if req.CourseID <= 0 {
			errChan <- fmt.Errorf("course is required")
			return
		}
		if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
			errChan <- err
			return
		}
		errChan <- nil
	}()

	// Check required text fields
	go func() {
		if strings.TrimSpace(req.Title) == "" {
			errChan <- fmt.Errorf("title is required")
			return
		}
		if strings.TrimSpace(req.Description) == "" {
			errChan <- fmt.Errorf("description is required")
			return
		}
		errChan <- nil
	}()

	// Check video URL host
	go func() {
		errChan <- checkVideoURL(req.VideoURL)
	}()

	for i := 0; i < 3; i++ {
		err := <-errChan
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a lesson, enforcing retrieve permissions
func (s *lessonService) GetByID(ctx context.Context, actor access.Actor, id int) (*models.Lesson, error) {
	lesson, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := access.Check(actor, access.EntityLesson, access.ActionRetrieve, lesson.OwnerID); err != nil {
		return nil, err
	}

	return lesson, nil
}

// GetAll retrieves a page of lessons
func (s *lessonService) GetAll(ctx context.Context, page, count int) ([]models.Lesson, int, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	lessons, err := s.repo.GetAll(ctx, page, count)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	return lessons, total, nil
}

// Update applies a partial update to a lesson
func (s *lessonService) Update(ctx context.Context, actor access.Actor, id int, req *models.UpdateLessonRequest) error {
	lesson, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := access.Check(actor, access.EntityLesson, access.ActionUpdate, lesson.OwnerID); err != nil {
		return err
	}

	if req.VideoURL != nil {
		if err := checkVideoURL(*req.VideoURL); err != nil {
			return err
		}
	}

	updated := &models.Lesson{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Preview:     strings.TrimSpace(req.Preview),
	}
	if req.VideoURL != nil {
		trimmed := strings.TrimSpace(*req.VideoURL)
		updated.VideoURL = trimmed
	}

	return s.repo.Update(ctx, updated)
}

// Delete deletes a lesson
func (s *lessonService) Delete(ctx context.Context, actor access.Actor, id int) error {
	lesson, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := access.Check(actor, access.EntityLesson, access.ActionDelete, lesson.OwnerID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// checkVideoURL rejects links to any video host other than the allowed one
func checkVideoURL(videoURL string) error {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return nil
	}
	if !strings.Contains(videoURL, allowedVideoHost) {
		return fmt.Errorf("video_url must link to %s", allowedVideoHost)
	}
	return nil
}
