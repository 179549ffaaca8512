package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/skillforge/backend/internal/access"
	"github.com/skillforge/backend/internal/middleware"
	"github.com/skillforge/backend/internal/models"
)

// getActor extracts the authenticated actor from the request context
func getActor(r *http.Request) (access.Actor, error) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		return access.Actor{}, fmt.Errorf("user ID not found in context")
	}
	role, ok := middleware.GetRole(r.Context())
	if !ok {
		return access.Actor{}, fmt.Errorf("role not found in context")
	}
	return access.Actor{ID: userID, Role: models.Role(role)}, nil
}

// getPage parses the page query parameter, defaulting to the first page
func getPage(r *http.Request) int {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	return page
}
