package models

import (
	"strings"
	"time"
)

// NotificationStatus represents the delivery status of a notification job
type NotificationStatus string

const (
	NotificationStatusEnqueued  NotificationStatus = "Enqueued"
	NotificationStatusCompleted NotificationStatus = "Completed"
	NotificationStatusFailed    NotificationStatus = "Failed"
)

// Notification represents a course-change notification job.
//
// Recipients are stored as a semicolon-separated email list. Delivery is
// at-least-once: the queue retries failed jobs, and the email send is not
// transactional with the status update.
type Notification struct {
	ID         int                `json:"id"`
	CourseID   int                `json:"course_id"`
	Recipients string             `json:"recipients"`
	Message    string             `json:"message"`
	CreatedAt  time.Time          `json:"created_at"`
	Status     NotificationStatus `json:"status"`
	Error      string             `json:"error,omitempty"`
}

// RecipientList splits the stored recipients into individual emails
func (n *Notification) RecipientList() []string {
	if n.Recipients == "" {
		return nil
	}
	return strings.Split(n.Recipients, ";")
}
