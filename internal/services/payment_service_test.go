package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skillforge/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockPaymentRepository is a mock implementation of PaymentRepository
type mockPaymentRepository struct {
	payments      []models.Payment
	total         int
	err           error
	createErr     error
	updateErr     error
	getErr        error
	lastStatus    models.PaymentStatus
	lastSessionID string
	lastLink      string
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if m.createErr != nil {
		return m.createErr
	}
	payment.ID = 1
	return nil
}

func (m *mockPaymentRepository) GetByID(ctx context.Context, id int) (*models.Payment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &models.Payment{
		ID:          id,
		SessionID:   m.lastSessionID,
		PaymentLink: m.lastLink,
		Status:      m.lastStatus,
		PaymentDate: time.Now(),
	}, nil
}

func (m *mockPaymentRepository) UpdateProviderSession(ctx context.Context, id int, sessionID, paymentLink string, status models.PaymentStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.lastSessionID = sessionID
	m.lastLink = paymentLink
	m.lastStatus = status
	return nil
}

func (m *mockPaymentRepository) GetAll(ctx context.Context, filter *models.PaymentFilter, page, count int) ([]models.Payment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.payments, nil
}

func (m *mockPaymentRepository) CountAll(ctx context.Context, filter *models.PaymentFilter) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.total, nil
}

// mockSessionCreator is a mock implementation of payments.SessionCreator
type mockSessionCreator struct {
	sessionID   string
	paymentLink string
	err         error
	lastAmount  float64
	lastDesc    string
}

func (m *mockSessionCreator) CreateSession(ctx context.Context, amount float64, description string) (string, string, error) {
	m.lastAmount = amount
	m.lastDesc = description
	if m.err != nil {
		return "", "", m.err
	}
	return m.sessionID, m.paymentLink, nil
}

func TestPaymentService_Create(t *testing.T) {
	existingCourse := &mockCourseRepository{course: &models.Course{ID: 7, Title: "Go с нуля"}}

	tests := []struct {
		name          string
		req           *models.CreatePaymentRequest
		repo          *mockPaymentRepository
		courseRepo    *mockCourseRepository
		provider      *mockSessionCreator
		expectedError bool
		errorContains string
	}{
		{
			name: "successful payment",
			req: &models.CreatePaymentRequest{
				CourseID: 7,
				Amount:   100.00,
				Method:   models.PaymentMethodTransfer,
			},
			repo:       &mockPaymentRepository{},
			courseRepo: existingCourse,
			provider:   &mockSessionCreator{sessionID: "sess_1", paymentLink: "https://pay/sess_1"},
		},
		{
			name: "course missing",
			req: &models.CreatePaymentRequest{
				CourseID: 999999,
				Amount:   100.00,
				Method:   models.PaymentMethodTransfer,
			},
			repo:          &mockPaymentRepository{},
			courseRepo:    &mockCourseRepository{},
			provider:      &mockSessionCreator{},
			expectedError: true,
			errorContains: "course not found",
		},
		{
			name: "invalid method",
			req: &models.CreatePaymentRequest{
				CourseID: 7,
				Amount:   100.00,
				Method:   "barter",
			},
			repo:          &mockPaymentRepository{},
			courseRepo:    existingCourse,
			provider:      &mockSessionCreator{},
			expectedError: true,
			errorContains: "invalid payment method",
		},
		{
			name: "non-positive amount",
			req: &models.CreatePaymentRequest{
				CourseID: 7,
				Amount:   0,
				Method:   models.PaymentMethodCash,
			},
			repo:          &mockPaymentRepository{},
			courseRepo:    existingCourse,
			provider:      &mockSessionCreator{},
			expectedError: true,
			errorContains: "payment_amount",
		},
		{
			name: "repository error",
			req: &models.CreatePaymentRequest{
				CourseID: 7,
				Amount:   100.00,
				Method:   models.PaymentMethodTransfer,
			},
			repo:          &mockPaymentRepository{createErr: errors.New("database error")},
			courseRepo:    existingCourse,
			provider:      &mockSessionCreator{},
			expectedError: true,
		},
		{
			name: "reload after save fails",
			req: &models.CreatePaymentRequest{
				CourseID: 7,
				Amount:   100.00,
				Method:   models.PaymentMethodTransfer,
			},
			repo:          &mockPaymentRepository{getErr: errors.New("database error")},
			courseRepo:    existingCourse,
			provider:      &mockSessionCreator{sessionID: "sess_1", paymentLink: "https://pay/sess_1"},
			expectedError: true,
			errorContains: "failed to load payment",
		},
		{
			name: "provider failure",
			req: &models.CreatePaymentRequest{
				CourseID: 7,
				Amount:   100.00,
				Method:   models.PaymentMethodTransfer,
			},
			repo:          &mockPaymentRepository{},
			courseRepo:    existingCourse,
			provider:      &mockSessionCreator{err: errors.New("connection refused")},
			expectedError: true,
			errorContains: "payment provider unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPaymentService(tt.repo, tt.courseRepo, tt.provider, zap.NewNop())

			payment, err := svc.Create(context.Background(), 10, tt.req)

			if tt.expectedError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, payment)
			assert.Equal(t, 1, payment.ID)
			assert.Equal(t, "sess_1", payment.SessionID)
			assert.Equal(t, "https://pay/sess_1", payment.PaymentLink)
			assert.Equal(t, models.PaymentStatusConfirmed, payment.Status)
			assert.Equal(t, models.PaymentStatusConfirmed, tt.repo.lastStatus)
			assert.False(t, payment.PaymentDate.IsZero())
		})
	}
}

func TestPaymentService_Create_DescriptionNamesCourse(t *testing.T) {
	provider := &mockSessionCreator{sessionID: "sess_1", paymentLink: "https://pay/sess_1"}
	courseRepo := &mockCourseRepository{course: &models.Course{ID: 7, Title: "Go с нуля"}}
	svc := NewPaymentService(&mockPaymentRepository{}, courseRepo, provider, zap.NewNop())

	_, err := svc.Create(context.Background(), 10, &models.CreatePaymentRequest{
		CourseID: 7,
		Amount:   100.00,
		Method:   models.PaymentMethodTransfer,
	})

	require.NoError(t, err)
	assert.Equal(t, 100.00, provider.lastAmount)
	assert.Contains(t, provider.lastDesc, "Go с нуля")
}

func TestPaymentService_Create_ProviderFailureMarksFailed(t *testing.T) {
	repo := &mockPaymentRepository{}
	courseRepo := &mockCourseRepository{course: &models.Course{ID: 7, Title: "Go с нуля"}}
	provider := &mockSessionCreator{err: errors.New("timeout")}
	svc := NewPaymentService(repo, courseRepo, provider, zap.NewNop())

	_, err := svc.Create(context.Background(), 10, &models.CreatePaymentRequest{
		CourseID: 7,
		Amount:   100.00,
		Method:   models.PaymentMethodTransfer,
	})

	require.Error(t, err)
	assert.Equal(t, models.PaymentStatusFailed, repo.lastStatus)
	assert.Empty(t, repo.lastSessionID)
	assert.Empty(t, repo.lastLink)
}

func TestPaymentService_GetAll(t *testing.T) {
	tests := []struct {
		name          string
		filter        *models.PaymentFilter
		repo          *mockPaymentRepository
		expectedError bool
		expectedTotal int
	}{
		{
			name:   "no filter",
			filter: nil,
			repo: &mockPaymentRepository{
				payments: []models.Payment{{ID: 1}, {ID: 2}},
				total:    2,
			},
			expectedTotal: 2,
		},
		{
			name:   "method filter",
			filter: &models.PaymentFilter{Method: models.PaymentMethodCash},
			repo: &mockPaymentRepository{
				payments: []models.Payment{{ID: 1}},
				total:    1,
			},
			expectedTotal: 1,
		},
		{
			name:          "invalid method filter",
			filter:        &models.PaymentFilter{Method: "barter"},
			repo:          &mockPaymentRepository{},
			expectedError: true,
		},
		{
			name:          "repository error",
			filter:        nil,
			repo:          &mockPaymentRepository{err: errors.New("database error")},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPaymentService(tt.repo, &mockCourseRepository{}, &mockSessionCreator{}, zap.NewNop())

			payments, total, err := svc.GetAll(context.Background(), tt.filter, 1, 10)

			if tt.expectedError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedTotal, total)
			assert.Len(t, payments, tt.expectedTotal)
		})
	}
}
