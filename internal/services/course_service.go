package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillforge/backend/internal/access"
	"github.com/skillforge/backend/internal/models"
	"go.uber.org/zap"
)

// CourseRepository is the interface that wraps methods for Course table data access
type CourseRepository interface {
	// Method GetByID retrieves a course by ID.
	//
	// "id" parameter is used to retrieve a course by ID.
	//
	// If course with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// Method GetDetail retrieves a course with its lesson count and the
	// subscription flag of the requesting user.
	//
	// "id" parameter is used to retrieve a course by ID.
	// "userID" parameter is used to compute the subscription flag.
	//
	// If course with such ID does not exist, the error will be returned together with "nil" value.
	GetDetail(ctx context.Context, id, userID int) (*models.CourseDetailResponse, error)
	// Method GetAll retrieves a page of courses with their lesson counts.
	GetAll(ctx context.Context, page, count int) ([]models.CourseListItem, error)
	// Method CountAll returns the total number of courses.
	CountAll(ctx context.Context) (int, error)
	// Method Create inserts a new course and sets its ID.
	Create(ctx context.Context, course *models.Course) error
	// Method Update applies a partial update to a course.
	Update(ctx context.Context, course *models.Course) error
	// Method Delete deletes a course by ID.
	Delete(ctx context.Context, id int) error
}

// LessonsByCourseRepository wraps the lesson lookup the course detail view needs
type LessonsByCourseRepository interface {
	// Method GetByCourseID retrieves all lessons of a course.
	GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error)
}

// CourseChangeDispatcher queues subscriber notifications after a course update
type CourseChangeDispatcher interface {
	DispatchCourseUpdated(ctx context.Context, course *models.Course) error
}

// courseService implements course catalog operations
type courseService struct {
	repo       CourseRepository
	lessonRepo LessonsByCourseRepository
	dispatcher CourseChangeDispatcher
	logger     *zap.Logger
}

// NewCourseService creates a new course service
func NewCourseService(
	repo CourseRepository,
	lessonRepo LessonsByCourseRepository,
	dispatcher CourseChangeDispatcher,
	logger *zap.Logger,
) *courseService {
	return &courseService{
		repo:       repo,
		lessonRepo: lessonRepo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create creates a new course owned by the actor
func (s *courseService) Create(ctx context.Context, actor access.Actor, req *models.CreateCourseRequest) (int, error) {
	if err := access.Check(actor, access.EntityCourse, access.ActionCreate, nil); err != nil {
		return 0, err
	}

	if err := checkCourseFields(req.Title, req.Description); err != nil {
		return 0, err
	}

	ownerID := actor.ID
	course := &models.Course{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Preview:     strings.TrimSpace(req.Preview),
		OwnerID:     &ownerID,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		return 0, fmt.Errorf("failed to create course: %w", err)
	}

	return course.ID, nil
}

// GetDetail retrieves a course detail view with nested lessons
func (s *courseService) GetDetail(ctx context.Context, actor access.Actor, id int) (*models.CourseDetailResponse, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := access.Check(actor, access.EntityCourse, access.ActionRetrieve, course.OwnerID); err != nil {
		return nil, err
	}

	detail, err := s.repo.GetDetail(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.lessonRepo.GetByCourseID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	detail.Lessons = lessons

	return detail, nil
}

// GetAll retrieves a page of the course catalog
func (s *courseService) GetAll(ctx context.Context, page, count int) ([]models.CourseListItem, int, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	courses, err := s.repo.GetAll(ctx, page, count)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// Update applies a partial update to a course and notifies its subscribers
func (s *courseService) Update(ctx context.Context, actor access.Actor, id int, req *models.UpdateCourseRequest) error {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := access.Check(actor, access.EntityCourse, access.ActionUpdate, course.OwnerID); err != nil {
		return err
	}

	updated := &models.Course{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Preview:     strings.TrimSpace(req.Preview),
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return err
	}

	if updated.Title == "" {
		updated.Title = course.Title
	}

	// Subscribers are notified off the request path. A dispatch failure is
	// logged and the update still succeeds; the job row makes it observable.
	go func() {
		dispatchCtx := context.WithoutCancel(ctx)
		if err := s.dispatcher.DispatchCourseUpdated(dispatchCtx, updated); err != nil {
			s.logger.Warn("failed to dispatch course update notification",
				zap.Int("course_id", id), zap.Error(err))
		}
	}()

	return nil
}

// Delete deletes a course; its lessons cascade with it
func (s *courseService) Delete(ctx context.Context, actor access.Actor, id int) error {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := access.Check(actor, access.EntityCourse, access.ActionDelete, course.OwnerID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// checkCourseFields validates required course fields
func checkCourseFields(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}
