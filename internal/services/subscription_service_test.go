package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/skillforge/backend/internal/models"
	"github.com/skillforge/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockSubscriptionRepository is a mock implementation of SubscriptionRepository
type mockSubscriptionRepository struct {
	sub       *models.Subscription
	err       error
	createErr error
	deleteErr error
}

func (m *mockSubscriptionRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.Subscription, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.sub == nil {
		return nil, fmt.Errorf("subscription not found")
	}
	return m.sub, nil
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	if m.createErr != nil {
		return m.createErr
	}
	sub.ID = 1
	return nil
}

func (m *mockSubscriptionRepository) Delete(ctx context.Context, id int) error {
	return m.deleteErr
}

func TestSubscriptionService_Toggle(t *testing.T) {
	existingCourse := &mockCourseRepository{course: &models.Course{ID: 5, Title: "Go с нуля"}}

	tests := []struct {
		name            string
		repo            *mockSubscriptionRepository
		courseRepo      *mockCourseRepository
		expectedError   bool
		errorContains   string
		expectedMessage string
	}{
		{
			name:            "not subscribed, subscribes",
			repo:            &mockSubscriptionRepository{},
			courseRepo:      existingCourse,
			expectedMessage: models.SubscriptionAdded,
		},
		{
			name:            "subscribed, unsubscribes",
			repo:            &mockSubscriptionRepository{sub: &models.Subscription{ID: 1, UserID: 10, CourseID: 5}},
			courseRepo:      existingCourse,
			expectedMessage: models.SubscriptionRemoved,
		},
		{
			name:            "insert loses race, treated as subscribed",
			repo:            &mockSubscriptionRepository{createErr: repositories.ErrAlreadySubscribed},
			courseRepo:      existingCourse,
			expectedMessage: models.SubscriptionAdded,
		},
		{
			name: "delete loses race, treated as unsubscribed",
			repo: &mockSubscriptionRepository{
				sub:       &models.Subscription{ID: 1, UserID: 10, CourseID: 5},
				deleteErr: fmt.Errorf("subscription not found"),
			},
			courseRepo:      existingCourse,
			expectedMessage: models.SubscriptionRemoved,
		},
		{
			name:          "course missing",
			repo:          &mockSubscriptionRepository{},
			courseRepo:    &mockCourseRepository{},
			expectedError: true,
			errorContains: "course not found",
		},
		{
			name:          "lookup error surfaces",
			repo:          &mockSubscriptionRepository{err: errors.New("database error")},
			courseRepo:    existingCourse,
			expectedError: true,
		},
		{
			name:          "insert error surfaces",
			repo:          &mockSubscriptionRepository{createErr: errors.New("database error")},
			courseRepo:    existingCourse,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSubscriptionService(tt.repo, tt.courseRepo, zap.NewNop())

			message, err := svc.Toggle(context.Background(), 10, 5)

			if tt.expectedError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedMessage, message)
		})
	}
}

func TestSubscriptionService_Toggle_RoundTrip(t *testing.T) {
	courseRepo := &mockCourseRepository{course: &models.Course{ID: 5, Title: "Go с нуля"}}
	repo := &mockSubscriptionRepository{}
	svc := NewSubscriptionService(repo, courseRepo, zap.NewNop())

	message, err := svc.Toggle(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionAdded, message)

	// Second toggle sees the row the first one created
	repo.sub = &models.Subscription{ID: 1, UserID: 10, CourseID: 5}

	message, err = svc.Toggle(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionRemoved, message)
}
