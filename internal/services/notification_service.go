package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/skillforge/backend/internal/models"
	"go.uber.org/zap"
)

// NotificationRepository is the interface that wraps methods for Notification table data access
type NotificationRepository interface {
	// Method Create inserts a new notification job row.
	//
	// "notification" parameter is used to create a new notification job row.
	//
	// If some error occurs during notification creation, the error will be returned.
	Create(ctx context.Context, notification *models.Notification) error
}

// SubscriberRepository is the interface that wraps subscriber lookup for notification fan-out
type SubscriberRepository interface {
	// Method GetSubscriberEmails retrieves the emails of all users subscribed to a course.
	//
	// "courseID" parameter is used to retrieve the emails of all users subscribed to a course.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	GetSubscriberEmails(ctx context.Context, courseID int) ([]string, error)
}

// TaskEnqueuer is the interface that wraps queue submission
type TaskEnqueuer interface {
	// Method Enqueue submits a task to the queue. *asynq.Client satisfies it.
	//
	// "task" parameter is the task to submit.
	// "opts" parameter carries queue options such as queue name and retry count.
	//
	// If some error occurs during task submission, the error will be returned together with "nil" value.
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// notificationDispatcher persists notification jobs and hands them to the queue.
//
// Delivery contract: a job row is written before the enqueue call, and the worker
// marks it Completed only after the emails went out. A crash between enqueue and
// send leaves the row Enqueued and the queue redelivers, so subscribers may
// receive a duplicate email but never miss one.
type notificationDispatcher struct {
	repo             NotificationRepository
	subscriptionRepo SubscriberRepository
	queue            TaskEnqueuer
	logger           *zap.Logger
}

// NewNotificationDispatcher creates a new notification dispatcher
func NewNotificationDispatcher(
	repo NotificationRepository,
	subscriptionRepo SubscriberRepository,
	queue TaskEnqueuer,
	logger *zap.Logger,
) *notificationDispatcher {
	return &notificationDispatcher{
		repo:             repo,
		subscriptionRepo: subscriptionRepo,
		queue:            queue,
		logger:           logger,
	}
}

// DispatchCourseUpdated queues an update notification for every subscriber of the course
func (d *notificationDispatcher) DispatchCourseUpdated(ctx context.Context, course *models.Course) error {
	emails, err := d.subscriptionRepo.GetSubscriberEmails(ctx, course.ID)
	if err != nil {
		return fmt.Errorf("failed to get subscriber emails: %w", err)
	}

	// Nobody to notify
	if len(emails) == 0 {
		return nil
	}

	notification := &models.Notification{
		CourseID:   course.ID,
		Recipients: strings.Join(emails, ";"),
		Message:    fmt.Sprintf("Материалы курса \"%s\" были обновлены", course.Title),
	}

	if err := d.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if err := d.addToQueue(notification); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}

	d.logger.Info("Course update notification enqueued",
		zap.Int("course_id", course.ID),
		zap.Int("notification_id", notification.ID),
		zap.Int("recipients", len(emails)))

	return nil
}

func (d *notificationDispatcher) addToQueue(notification *models.Notification) error {
	payload := []byte(strconv.Itoa(notification.ID))
	asynqTask := asynq.NewTask("notification:course_changed", payload)
	if _, err := d.queue.Enqueue(asynqTask, asynq.Queue("notifications"), asynq.MaxRetry(5)); err != nil {
		return err
	}
	return nil
}
