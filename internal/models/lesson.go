package models

// Lesson represents a lesson inside a course
//
// Lessons are deleted together with their course. VideoURL, when present,
// must reference the allowed video provider.
type Lesson struct {
	ID          int    `json:"id"`
	CourseID    int    `json:"course"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Preview     string `json:"preview,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
	OwnerID     *int   `json:"owner,omitempty"`
}

// CreateLessonRequest represents a request to create a lesson
type CreateLessonRequest struct {
	CourseID    int    `json:"course"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Preview     string `json:"preview,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
}

// UpdateLessonRequest represents a request to update a lesson (partial update)
type UpdateLessonRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Preview     string `json:"preview,omitempty"`
	VideoURL    *string `json:"video_url,omitempty"`
}
