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

// CourseService is the interface that wraps methods for course catalog operations
type CourseService interface {
	// Create creates a new course owned by the actor
	//
	// "ctx" is the context for the request.
	// "actor" is the requesting user.
	// "req" is the request to create a course.
	//
	// Returns the ID of the created course and an error if any.
	Create(ctx context.Context, actor access.Actor, req *models.CreateCourseRequest) (int, error)
	// GetDetail retrieves a course detail view with nested lessons
	//
	// "ctx" is the context for the request.
	// "actor" is the requesting user.
	// "id" is the ID of the course.
	//
	// Returns the course detail view and an error if any.
	GetDetail(ctx context.Context, actor access.Actor, id int) (*models.CourseDetailResponse, error)
	// GetAll retrieves a page of the course catalog
	//
	// "ctx" is the context for the request.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns the page of courses, the total course count and an error if any.
	GetAll(ctx context.Context, page, count int) ([]models.CourseListItem, int, error)
	// Update applies a partial update to a course
	//
	// "ctx" is the context for the request.
	// "actor" is the requesting user.
	// "id" is the ID of the course.
	// "req" is the request to update a course.
	//
	// Returns an error if any.
	Update(ctx context.Context, actor access.Actor, id int, req *models.UpdateCourseRequest) error
	// Delete deletes a course together with its lessons
	//
	// "ctx" is the context for the request.
	// "actor" is the requesting user.
	// "id" is the ID of the course.
	//
	// Returns an error if any.
	Delete(ctx context.Context, actor access.Actor, id int) error
}

// CourseHandler handles HTTP requests for the course catalog
type CourseHandler struct {
	BaseHandler
	service  CourseService
	pageSize int
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, pageSize int, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
		pageSize:    pageSize,
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/{id}/", h.GetDetail)
		r.Put("/{id}/", h.Update)
		r.Patch("/{id}/", h.Update)
		r.Delete("/{id}/", h.Delete)
	})
}

// GetAll handles GET /courses/
// @Summary Get course catalog
// @Description Get paginated list of courses with lesson counts
// @Tags courses
// @Accept json
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Success 200 {object} models.PaginatedResponse[models.CourseListItem] "Page of courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/ [get]
func (h *CourseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page := getPage(r)

	courses, total, err := h.service.GetAll(r.Context(), page, h.pageSize)
	if err != nil {
		h.Logger.Error("failed to get courses", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewPaginatedResponse(r.URL, page, h.pageSize, total, courses))
}

// Create handles POST /courses/
// @Summary Create a course
// @Description Create a new course owned by the authenticated user
// @Tags courses
// @Accept json
// @Produce json
// @Param request body models.CreateCourseRequest true "Course creation request"
// @Success 201 {object} map[string]any "Course created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - moderators may not create courses"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/ [post]
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	courseID, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.Logger.Error("failed to create course", zap.Error(err))
		h.RespondError(w, errorStatus(err, http.StatusBadRequest), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      courseID,
		"message": "course created successfully",
	})
}

// GetDetail handles GET /courses/{id}/
// @Summary Get course detail
// @Description Get a course with its nested lessons, lesson count and the requester's subscription flag
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.CourseDetailResponse "Course detail"
// @Failure 400 {object} map[string]string "Invalid course ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not course owner"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{id}/ [get]
func (h *CourseHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	detail, err := h.service.GetDetail(r.Context(), actor, courseID)
	if err != nil {
		h.Logger.Error("failed to get course detail", zap.Error(err))
		h.RespondError(w, errorStatus(err, http.StatusInternalServerError), err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, detail)
}

// Update handles PUT and PATCH /courses/{id}/
// @Summary Update a course
// @Description Update a course owned by the authenticated user (partial update); subscribers are notified
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body models.UpdateCourseRequest true "Course update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not course owner"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{id}/ [put]
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	var req models.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Update(r.Context(), actor, courseID, &req); err != nil {
		h.Logger.Error("failed to update course", zap.Error(err))
		h.RespondError(w, errorStatus(err, http.StatusBadRequest), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /courses/{id}/
// @Summary Delete a course
// @Description Delete a course owned by the authenticated user; its lessons are deleted with it
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid course ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden - not course owner or moderator attempted delete"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{id}/ [delete]
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := getActor(r)
	if err != nil {
		h.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	if err := h.service.Delete(r.Context(), actor, courseID); err != nil {
		h.Logger.Error("failed to delete course", zap.Error(err))
		h.RespondError(w, errorStatus(err, http.StatusInternalServerError), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
