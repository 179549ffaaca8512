package services

import (
	"context"
	"fmt"

	"github.com/skillforge/backend/internal/models"
	"github.com/skillforge/backend/internal/payments"
	"go.uber.org/zap"
)

// PaymentRepository is the interface that wraps methods for Payment table data access
type PaymentRepository interface {
	// Method Create inserts a new payment row in the created state and sets its ID.
	Create(ctx context.Context, payment *models.Payment) error
	// Method GetByID retrieves a payment by ID.
	//
	// If payment with such ID does not exist, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Payment, error)
	// Method UpdateProviderSession records the provider session outcome on a payment.
	//
	// "sessionID" and "paymentLink" parameters carry the provider session; both
	// are empty when the session creation failed.
	// "status" parameter moves the payment out of the created state.
	UpdateProviderSession(ctx context.Context, id int, sessionID, paymentLink string, status models.PaymentStatus) error
	// Method GetAll retrieves a page of payments matching a filter.
	GetAll(ctx context.Context, filter *models.PaymentFilter, page, count int) ([]models.Payment, error)
	// Method CountAll returns the number of payments matching a filter.
	CountAll(ctx context.Context, filter *models.PaymentFilter) (int, error)
}

// paymentService orchestrates payment rows and provider sessions.
//
// Every payment moves created -> confirmed or created -> failed exactly once.
// A failed payment is terminal; paying again creates a new row.
type paymentService struct {
	repo       PaymentRepository
	courseRepo CourseExistsRepository
	provider   payments.SessionCreator
	logger     *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	repo PaymentRepository,
	courseRepo CourseExistsRepository,
	provider payments.SessionCreator,
	logger *zap.Logger,
) *paymentService {
	return &paymentService{
		repo:       repo,
		courseRepo: courseRepo,
		provider:   provider,
		logger:     logger,
	}
}

// Create persists a course payment and opens a provider charge session
func (s *paymentService) Create(ctx context.Context, userID int, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if err := checkPaymentRequest(req); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	courseID := req.CourseID
	payment := &models.Payment{
		UserID:   userID,
		CourseID: &courseID,
		Amount:   req.Amount,
		Method:   req.Method,
		Status:   models.PaymentStatusCreated,
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	description := fmt.Sprintf("Покупка курса: %s", course.Title)
	sessionID, paymentLink, err := s.provider.CreateSession(ctx, req.Amount, description)
	if err != nil {
		// Mark the row failed so it never lingers in the created state
		if updateErr := s.repo.UpdateProviderSession(ctx, payment.ID, "", "", models.PaymentStatusFailed); updateErr != nil {
			s.logger.Error("failed to mark payment as failed",
				zap.Int("payment_id", payment.ID), zap.Error(updateErr))
		}
		s.logger.Warn("provider session creation failed",
			zap.Int("payment_id", payment.ID), zap.Error(err))
		return nil, fmt.Errorf("payment provider unavailable: %w", err)
	}

	if err := s.repo.UpdateProviderSession(ctx, payment.ID, sessionID, paymentLink, models.PaymentStatusConfirmed); err != nil {
		return nil, fmt.Errorf("failed to save provider session: %w", err)
	}

	// Re-read the row so the response carries the stored payment date
	saved, err := s.repo.GetByID(ctx, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	return saved, nil
}

// GetAll retrieves a filtered page of payments
func (s *paymentService) GetAll(ctx context.Context, filter *models.PaymentFilter, page, count int) ([]models.Payment, int, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	if filter == nil {
		filter = &models.PaymentFilter{}
	}
	if filter.Method != "" && filter.Method != models.PaymentMethodCash && filter.Method != models.PaymentMethodTransfer {
		return nil, 0, fmt.Errorf("invalid payment method: %s", filter.Method)
	}

	payments, err := s.repo.GetAll(ctx, filter, page, count)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// checkPaymentRequest validates the payment creation request fields
func checkPaymentRequest(req *models.CreatePaymentRequest) error {
	if req.CourseID <= 0 {
		return fmt.Errorf("paid_course is required")
	}
	if req.Amount <= 0 {
		return fmt.Errorf("payment_amount must be positive")
	}
	if req.Method != models.PaymentMethodCash && req.Method != models.PaymentMethodTransfer {
		return fmt.Errorf("invalid payment method: %s", req.Method)
	}
	return nil
}
