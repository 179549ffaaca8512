package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/skillforge/backend/internal/access"
	"github.com/skillforge/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockLessonRepository is a mock implementation of LessonRepository
type mockLessonRepository struct {
	lesson    *models.Lesson
	lessons   []models.Lesson
	total     int
	err       error
	createErr error
	updateErr error
	deleteErr error
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.lesson == nil {
		return nil, fmt.Errorf("lesson not found")
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) GetAll(ctx context.Context, page, count int) ([]models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.lessons, nil
}

func (m *mockLessonRepository) CountAll(ctx context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.total, nil
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if m.createErr != nil {
		return m.createErr
	}
	lesson.ID = 1
	return nil
}

func (m *mockLessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	return m.updateErr
}

func (m *mockLessonRepository) Delete(ctx context.Context, id int) error {
	return m.deleteErr
}

func TestLessonService_Create(t *testing.T) {
	courseRepo := &mockCourseRepository{course: &models.Course{ID: 5, Title: "Go с нуля"}}

	tests := []struct {
		name          string
		actor         access.Actor
		req           *models.CreateLessonRequest
		repo          *mockLessonRepository
		courseRepo    *mockCourseRepository
		expectedError bool
		errorContains string
	}{
		{
			name:  "user creates lesson",
			actor: access.Actor{ID: 10, Role: models.RoleUser},
			req: &models.CreateLessonRequest{
				CourseID:    5,
				Title:       "Переменные",
				Description: "Объявление переменных",
				VideoURL:    "https://www.youtube.com/watch?v=abc",
			},
			repo:       &mockLessonRepository{},
			courseRepo: courseRepo,
		},
		{
			name:  "lesson without video",
			actor: access.Actor{ID: 10, Role: models.RoleUser},
			req: &models.CreateLessonRequest{
				CourseID:    5,
				Title:       "Переменные",
				Description: "Объявление переменных",
			},
			repo:       &mockLessonRepository{},
			courseRepo: courseRepo,
		},
		{
			name:  "moderator cannot create",
			actor: access.Actor{ID: 20, Role: models.RoleModerator},
			req: &models.CreateLessonRequest{
				CourseID:    5,
				Title:       "Переменные",
				Description: "Объявление переменных",
			},
			repo:          &mockLessonRepository{},
			courseRepo:    courseRepo,
			expectedError: true,
			errorContains: "rights",
		},
		{
			name:  "foreign video host rejected",
			actor: access.Actor{ID: 10, Role: models.RoleUser},
			req: &models.CreateLessonRequest{
				CourseID:    5,
				Title:       "Переменные",
				Description: "Объявление переменных",
				VideoURL:    "https://rutube.ru/video/abc",
			},
			repo:          &mockLessonRepository{},
			courseRepo:    courseRepo,
			expectedError: true,
			errorContains: "video_url",
		},
		{
			name:  "parent course missing",
			actor: access.Actor{ID: 10, Role: models.RoleUser},
			req: &models.CreateLessonRequest{
				CourseID:    999999,
				Title:       "Переменные",
				Description: "Объявление переменных",
			},
			repo:          &mockLessonRepository{},
			courseRepo:    &mockCourseRepository{},
			expectedError: true,
			errorContains: "course not found",
		},
		{
			name:  "missing title",
			actor: access.Actor{ID: 10, Role: models.RoleUser},
			req: &models.CreateLessonRequest{
				CourseID:    5,
				Description: "Объявление переменных",
			},
			repo:          &mockLessonRepository{},
			courseRepo:    courseRepo,
			expectedError: true,
			errorContains: "title is required",
		},
		{
			name:  "repository error",
			actor: access.Actor{ID: 10, Role: models.RoleUser},
			req: &models.CreateLessonRequest{
				CourseID:    5,
				Title:       "Переменные",
				Description: "Объявление переменных",
			},
			repo:          &mockLessonRepository{createErr: errors.New("database error")},
			courseRepo:    courseRepo,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(tt.repo, tt.courseRepo, zap.NewNop())

			id, err := svc.Create(context.Background(), tt.actor, tt.req)

			if tt.expectedError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, id)
		})
	}
}

func TestLessonService_GetByID(t *testing.T) {
	ownedLesson := &models.Lesson{ID: 1, CourseID: 5, Title: "Переменные", OwnerID: intPtr(10)}

	tests := []struct {
		name          string
		actor         access.Actor
		repo          *mockLessonRepository
		expectedError bool
		errorContains string
	}{
		{
			name:  "owner retrieves",
			actor: access.Actor{ID: 10, Role: models.RoleUser},
			repo:  &mockLessonRepository{lesson: ownedLesson},
		},
		{
			name:  "moderator retrieves",
			actor: access.Actor{ID: 99, Role: models.RoleModerator},
			repo:  &mockLessonRepository{lesson: ownedLesson},
		},
		{
			name:          "non-owner denied",
			actor:         access.Actor{ID: 11, Role: models.RoleUser},
			repo:          &mockLessonRepository{lesson: ownedLesson},
			expectedError: true,
			errorContains: "rights",
		},
		{
			name:          "lesson not found",
			actor:         access.Actor{ID: 10, Role: models.RoleUser},
			repo:          &mockLessonRepository{},
			expectedError: true,
			errorContains: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(tt.repo, &mockCourseRepository{}, zap.NewNop())

			lesson, err := svc.GetByID(context.Background(), tt.actor, 1)

			if tt.expectedError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Переменные", lesson.Title)
		})
	}
}

func TestLessonService_GetAll(t *testing.T) {
	repo := &mockLessonRepository{
		lessons: []models.Lesson{{ID: 1}, {ID: 2}},
		total:   2,
	}
	svc := NewLessonService(repo, &mockCourseRepository{}, zap.NewNop())

	lessons, total, err := svc.GetAll(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, lessons, 2)
}

func TestLessonService_Update(t *testing.T) {
	ownedLesson := &models.Lesson{ID: 1, CourseID: 5, Title: "Переменные", OwnerID: intPtr(10)}
	badURL := "https://vimeo.com/123"
	goodURL := "https://www.youtube.com/watch?v=xyz"

	tests := []struct {
		name          string
		actor         access.Actor
		req           *models.UpdateLessonRequest
		repo          *mockLessonRepository
		expectedError bool
		errorContains string
	}{
		{
			name:  "owner updates title",
			actor: access.Actor{ID: 10, Role: models.RoleUser},
			req:   &models.UpdateLessonRequest{Title: "Типы данных"},
			repo:  &mockLessonRepository{lesson: ownedLesson},
		},
		{
			name:  "owner updates video url",
			actor: access.Actor{ID: 10, Role: models.RoleUser},
			req:   &models.UpdateLessonRequest{VideoURL: &goodURL},
			repo:  &mockLessonRepository{lesson: ownedLesson},
		},
		{
			name:          "foreign video host rejected",
			actor:         access.Actor{ID: 10, Role: models.RoleUser},
			req:           &models.UpdateLessonRequest{VideoURL: &badURL},
			repo:          &mockLessonRepository{lesson: ownedLesson},
			expectedError: true,
			errorContains: "video_url",
		},
		{
			name:          "non-owner denied",
			actor:         access.Actor{ID: 11, Role: models.RoleUser},
			req:           &models.UpdateLessonRequest{Title: "Типы данных"},
			repo:          &mockLessonRepository{lesson: ownedLesson},
			expectedError: true,
			errorContains: "rights",
		},
		{
			name:          "lesson not found",
			actor:         access.Actor{ID: 10, Role: models.RoleUser},
			req:           &models.UpdateLessonRequest{Title: "Типы данных"},
			repo:          &mockLessonRepository{},
			expectedError: true,
			errorContains: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(tt.repo, &mockCourseRepository{}, zap.NewNop())

			err := svc.Update(context.Background(), tt.actor, 1, tt.req)

			if tt.expectedError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestLessonService_Delete(t *testing.T) {
	ownedLesson := &models.Lesson{ID: 1, CourseID: 5, Title: "Переменные", OwnerID: intPtr(10)}

	tests := []struct {
		name          string
		actor         access.Actor
		repo          *mockLessonRepository
		expectedError bool
		errorContains string
	}{
		{
			name:  "owner deletes",
			actor: access.Actor{ID: 10, Role: models.RoleUser},
			repo:  &mockLessonRepository{lesson: ownedLesson},
		},
		{
			name:          "moderator cannot delete",
			actor:         access.Actor{ID: 99, Role: models.RoleModerator},
			repo:          &mockLessonRepository{lesson: ownedLesson},
			expectedError: true,
			errorContains: "rights",
		},
		{
			name:          "non-owner cannot delete",
			actor:         access.Actor{ID: 11, Role: models.RoleUser},
			repo:          &mockLessonRepository{lesson: ownedLesson},
			expectedError: true,
			errorContains: "rights",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLessonService(tt.repo, &mockCourseRepository{}, zap.NewNop())

			err := svc.Delete(context.Background(), tt.actor, 1)

			if tt.expectedError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
		})
	}
}
