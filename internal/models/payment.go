package models

import "time"

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// PaymentStatus represents the provider-session state of a payment
type PaymentStatus string

const (
	// PaymentStatusCreated means the row is persisted but no provider session exists yet
	PaymentStatusCreated PaymentStatus = "created"
	// PaymentStatusConfirmed means the provider session was created successfully
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	// PaymentStatusFailed means provider session creation failed; the payment is
	// terminal and a retry is a new payment
	PaymentStatusFailed PaymentStatus = "failed"
)

// Payment represents a payment made by a user for a course or a single lesson
//
// SessionID and PaymentLink stay empty until the provider session is created.
type Payment struct {
	ID           int           `json:"id"`
	UserID       int           `json:"user"`
	CourseID     *int          `json:"paid_course,omitempty"`
	LessonID     *int          `json:"separately_paid_lesson,omitempty"`
	Amount       float64       `json:"payment_amount"`
	Method       PaymentMethod `json:"payment_method"`
	PaymentDate  time.Time     `json:"payment_date"`
	SessionID    string        `json:"session_id,omitempty"`
	PaymentLink  string        `json:"payment_link,omitempty"`
	Status       PaymentStatus `json:"status"`
}

// CreatePaymentRequest represents a request to pay for a course
type CreatePaymentRequest struct {
	CourseID int           `json:"paid_course"`
	Amount   float64       `json:"payment_amount"`
	Method   PaymentMethod `json:"payment_method"`
}

// PaymentFilter holds the filterable fields of the payment list endpoint
type PaymentFilter struct {
	CourseID *int
	LessonID *int
	Method   PaymentMethod
	DateFrom *time.Time
	DateTo   *time.Time
}
