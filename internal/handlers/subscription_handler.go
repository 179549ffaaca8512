package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skillforge/backend/internal/middleware"
	"github.com/skillforge/backend/internal/models"
	"go.uber.org/zap"
)

// SubscriptionService is the interface that wraps the subscription toggle
type SubscriptionService interface {
	// Toggle flips the subscription state of a user for a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the requesting user.
	// "courseID" is the ID of the course.
	//
	// Returns the outcome message and an error if any.
	Toggle(ctx context.Context, userID, courseID int) (string, error)
}

// SubscriptionHandler handles HTTP requests for course subscriptions
type SubscriptionHandler struct {
	BaseHandler
	service SubscriptionService
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(svc SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all subscription handler routes
func (h *SubscriptionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/{course_id}/subscribe/", h.Toggle)
}

// Toggle handles POST /{course_id}/subscribe/
// @Summary Toggle course subscription
// @Description Subscribe the authenticated user to a course, or unsubscribe if already subscribed
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} models.SubscriptionResponse "Toggle outcome message"
// @Failure 400 {object} map[string]string "Invalid course ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /{course_id}/subscribe/ [post]
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	courseID, err := strconv.Atoi(chi.URLParam(r, "course_id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	message, err := h.service.Toggle(r.Context(), userID, courseID)
	if err != nil {
		h.Logger.Error("failed to toggle subscription", zap.Error(err))
		h.RespondError(w, errorStatus(err, http.StatusInternalServerError), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.SubscriptionResponse{Message: message})
}
