package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/skillforge/backend/internal/models"
	"go.uber.org/zap"
)

// PaymentService is the interface that wraps methods for payment operations
type PaymentService interface {
	// Create persists a course payment and opens a provider charge session
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the paying user.
	// "req" is the request to create a payment.
	//
	// Returns the payment with its provider session and an error if any.
	Create(ctx context.Context, userID int, req *models.CreatePaymentRequest) (*models.Payment, error)
	// GetAll retrieves a filtered page of payments
	//
	// "ctx" is the context for the request.
	// "filter" narrows the list by course, lesson, method and date range.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns the page of payments, the total matching count and an error if any.
	GetAll(ctx context.Context, filter *models.PaymentFilter, page, count int) ([]models.Payment, int, error)
}

// PaymentHandler handles HTTP requests for payments
type PaymentHandler struct {
	BaseHandler
	service  PaymentService
	pageSize int
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(svc PaymentService, pageSize int, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
		pageSize:    pageSize,
	}
}

// RegisterRoutes registers all payment handler routes
func (h *PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
	})
}

// Create handles POST /payments/
// @Summary Pay for a course
// @Description Create a payment for a course and open a provider charge session. Returns the payment with its session id and payable link.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body models.CreatePaymentRequest true "Payment creation request"
// @Success 201 {object} models.Payment "Payment with provider session"
// @Failure 400 {object} map[string]string "Invalid request body, amount or method"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 502 {object} map[string]string "Payment provider unavailable"
// @Router /payments/ [post]
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := h.service.Create(r.Context(), actor.ID, &req)
	if err != nil {
		h.Logger.Error("failed to create payment", zap.Error(err))
		errStatus := errorStatus(err, http.StatusBadRequest)
		if strings.Contains(err.Error(), "provider") {
			errStatus = http.StatusBadGateway
		}
		h.RespondError(w, errStatus, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, payment)
}

// GetAll handles GET /payments/
// @Summary Get payments
// @Description Get paginated list of payments with optional course, lesson, method and date range filters
// @Tags payments
// @Accept json
// @Produce json
// @Param course query int false "Filter by paid course ID"
// @Param lesson query int false "Filter by separately paid lesson ID"
// @Param method query string false "Filter by payment method (cash, transfer)"
// @Param date_from query string false "Filter by payment date from (RFC 3339)"
// @Param date_to query string false "Filter by payment date to (RFC 3339)"
// @Param page query int false "Page number (default: 1)"
// @Success 200 {object} models.PaginatedResponse[models.Payment] "Page of payments"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /payments/ [get]
func (h *PaymentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if _, err := getActor(r); err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	filter, err := parsePaymentFilter(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := getPage(r)

	payments, total, err := h.service.GetAll(r.Context(), filter, page, h.pageSize)
	if err != nil {
		h.Logger.Error("failed to get payments", zap.Error(err))
		h.RespondError(w, errorStatus(err, http.StatusInternalServerError), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewPaginatedResponse(r.URL, page, h.pageSize, total, payments))
}

// parsePaymentFilter builds a payment filter from list query parameters
func parsePaymentFilter(r *http.Request) (*models.PaymentFilter, error) {
	filter := &models.PaymentFilter{}
	query := r.URL.Query()

	if courseStr := query.Get("course"); courseStr != "" {
		courseID, err := strconv.Atoi(courseStr)
		if err != nil {
			return nil, err
		}
		filter.CourseID = &courseID
	}

	if lessonStr := query.Get("lesson"); lessonStr != "" {
		lessonID, err := strconv.Atoi(lessonStr)
		if err != nil {
			return nil, err
		}
		filter.LessonID = &lessonID
	}

	if method := query.Get("method"); method != "" {
		filter.Method = models.PaymentMethod(method)
	}

	if fromStr := query.Get("date_from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, err
		}
		filter.DateFrom = &from
	}

	if toStr := query.Get("date_to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, err
		}
		filter.DateTo = &to
	}

	return filter, nil
}
