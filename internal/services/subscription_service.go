package services

import (
	"context"
	"errors"
	"strings"

	"github.com/skillforge/backend/internal/models"
	"github.com/skillforge/backend/internal/repositories"
	"go.uber.org/zap"
)

// SubscriptionRepository is the interface that wraps methods for Subscription table data access
type SubscriptionRepository interface {
	// Method GetByUserAndCourse retrieves a subscription row for a (user, course) pair.
	//
	// If no such subscription exists, the error will be returned together with "nil" value.
	GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.Subscription, error)
	// Method Create inserts a subscription row.
	//
	// Returns repositories.ErrAlreadySubscribed when the pair already exists.
	Create(ctx context.Context, sub *models.Subscription) error
	// Method Delete deletes a subscription by ID.
	Delete(ctx context.Context, id int) error
}

// subscriptionService implements the subscription toggle
type subscriptionService struct {
	repo       SubscriptionRepository
	courseRepo CourseExistsRepository
	logger     *zap.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(repo SubscriptionRepository, courseRepo CourseExistsRepository, logger *zap.Logger) *subscriptionService {
	return &subscriptionService{
		repo:       repo,
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// Toggle flips the subscription state of a user for a course.
//
// A subscribed user is unsubscribed and vice versa; the returned message
// names the outcome. A concurrent toggle that loses the insert race is
// absorbed as the subscribed outcome rather than surfaced as a failure.
func (s *subscriptionService) Toggle(ctx context.Context, userID, courseID int) (string, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return "", err
	}

	sub, err := s.repo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil && !strings.Contains(err.Error(), "not found") {
		return "", err
	}

	if sub != nil {
		if err := s.repo.Delete(ctx, sub.ID); err != nil {
			// A concurrent toggle already removed the row
			if strings.Contains(err.Error(), "not found") {
				return models.SubscriptionRemoved, nil
			}
			return "", err
		}
		return models.SubscriptionRemoved, nil
	}

	newSub := &models.Subscription{
		UserID:   userID,
		CourseID: courseID,
	}
	if err := s.repo.Create(ctx, newSub); err != nil {
		if errors.Is(err, repositories.ErrAlreadySubscribed) {
			s.logger.Debug("subscription insert lost the race",
				zap.Int("user_id", userID), zap.Int("course_id", courseID))
			return models.SubscriptionAdded, nil
		}
		return "", err
	}

	return models.SubscriptionAdded, nil
}
