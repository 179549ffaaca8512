package models

// Course represents a course in the catalog
//
// OwnerID is nil for courses whose owner account was deleted.
type Course struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Preview     string `json:"preview,omitempty"`
	OwnerID     *int   `json:"owner,omitempty"`
}

// CourseListItem represents a course in list responses
type CourseListItem struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	LessonsCount int    `json:"lessons_count"`
}

// CourseDetailResponse represents a course detail view with nested lessons,
// a computed lesson count and the requesting user's subscription flag
type CourseDetailResponse struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Preview      string   `json:"preview,omitempty"`
	LessonsCount int      `json:"lessons_count"`
	Lessons      []Lesson `json:"lessons"`
	Subscribed   bool     `json:"subscribed"`
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Preview     string `json:"preview,omitempty"`
}

// UpdateCourseRequest represents a request to update a course (partial update)
type UpdateCourseRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Preview     string `json:"preview,omitempty"`
}
