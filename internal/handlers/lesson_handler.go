package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skillforge/backend/internal/access"
	"github.com/skillforge/backend/internal/models"
	"go.uber.org/zap"
)

// LessonService is the interface that wraps methods for lesson catalog operations
type LessonService interface {
	// Create creates a new lesson owned by the actor
	//
	// "ctx" is the context for the request.
	// "actor" is the requesting user.
	// "req" is the request to create a lesson.
	//
	// Returns the ID of the created lesson and an error if any.
	Create(ctx context.Context, actor access.Actor, req *models.CreateLessonRequest) (int, error)
	// GetByID retrieves a lesson
	//
	// "ctx" is the context for the request.
	// "actor" is the requesting user.
	// "id" is the ID of the lesson.
	//
	// Returns the lesson and an error if any.
	GetByID(ctx context.Context, actor access.Actor, id int) (*models.Lesson, error)
	// GetAll retrieves a page of lessons
	//
	// "ctx" is the context for the request.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns the page of lessons, the total lesson count and an error if any.
	GetAll(ctx context.Context, page, count int) ([]models.Lesson, int, error)
	// Update applies a partial update to a lesson
	//
	// "ctx" is the context for the request.
	// "actor" is the requesting user.
	// "id" is the ID of the lesson.
	// "req" is the request to update a lesson.
	//
	// Returns an error if any.
	Update(ctx context.Context, actor access.Actor, id int, req *models.UpdateLessonRequest) error
	// Delete deletes a lesson
	//
	// "ctx" is the context for the request.
	// "actor" is the requesting user.
	// "id" is the ID of the lesson.
	//
	// Returns an error if any.
	Delete(ctx context.Context, actor access.Actor, id int) error
}

// LessonHandler handles HTTP requests for lessons
type LessonHandler struct {
	BaseHandler
	service  LessonService
	pageSize int
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonService, pageSize int, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
		pageSize:    pageSize,
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router) {
	r.Route("/lesson", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/create/", h.Create)
		r.Get("/{id}/", h.GetByID)
		r.Patch("/update/{id}/", h.Update)
		r.Delete("/delete/{id}/", h.Delete)
	})
}

// GetAll handles GET /lesson/
// @Summary Get lessons
// @Description Get paginated list of lessons
// @Tags lessons
// @Accept json
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Success 200 {object} models.PaginatedResponse[models.Lesson] "Page of lessons"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lesson/ [get]
func (h *LessonHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page := getPage(r)

	lessons, total, err := h.service.GetAll(r.Context(), page, h.pageSize)
	if err != nil {
		h.Logger.Error("failed to get lessons", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewPaginatedResponse(r.URL, page, h.pageSize, total, lessons))
}

// Create handles POST /lesson/create/
// @Summary Create a lesson
// @Description Create a new lesson in an existing course, owned by the authenticated user
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body models.CreateLessonRequest true "Lesson creation request"
// @Success 201 {object} map[string]any "Lesson created successfully"
// @Failure 400 {object} map[string]string "Invalid request body or video URL"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - moderators may not create lessons"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /lesson/create/ [post]
func (h *LessonHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lessonID, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.Logger.Error("failed to create lesson", zap.Error(err))
		h.RespondError(w, errorStatus(err, http.StatusBadRequest), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      lessonID,
		"message": "lesson created successfully",
	})
}

// GetByID handles GET /lesson/{id}/
// @Summary Get a lesson
// @Description Get a single lesson by ID
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.Lesson "Lesson"
// @Failure 400 {object} map[string]string "Invalid lesson ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not lesson owner"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /lesson/{id}/ [get]
func (h *LessonHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	lesson, err := h.service.GetByID(r.Context(), actor, lessonID)
	if err != nil {
		h.Logger.Error("failed to get lesson", zap.Error(err))
		h.RespondError(w, errorStatus(err, http.StatusInternalServerError), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// Update handles PATCH /lesson/update/{id}/
// @Summary Update a lesson
// @Description Update a lesson owned by the authenticated user (partial update)
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param request body models.UpdateLessonRequest true "Lesson update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body or video URL"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not lesson owner"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /lesson/update/{id}/ [patch]
func (h *LessonHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	var req models.UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Update(r.Context(), actor, lessonID, &req); err != nil {
		h.Logger.Error("failed to update lesson", zap.Error(err))
		h.RespondError(w, errorStatus(err, http.StatusBadRequest), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /lesson/delete/{id}/
// @Summary Delete a lesson
// @Description Delete a lesson owned by the authenticated user
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid lesson ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not lesson owner or moderator attempted delete"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lesson/delete/{id}/ [delete]
func (h *LessonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	if err := h.service.Delete(r.Context(), actor, lessonID); err != nil {
		h.Logger.Error("failed to delete lesson", zap.Error(err))
		h.RespondError(w, errorStatus(err, http.StatusInternalServerError), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
