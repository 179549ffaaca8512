package models

// Subscription represents a standing (user, course) relationship enabling
// course-change notifications. A user subscribes to a course at most once.
type Subscription struct {
	ID       int `json:"id"`
	UserID   int `json:"user"`
	CourseID int `json:"course"`
}

// Subscription toggle outcome messages
const (
	SubscriptionAdded   = "Подписка добавлена"
	SubscriptionRemoved = "Подписка удалена"
)

// SubscriptionResponse carries the toggle outcome message
type SubscriptionResponse struct {
	Message string `json:"message"`
}
