package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// CourseHandler handles course-related endpoints
type CourseHandler struct {
	courseService service.CourseService
	logger        zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, logger: logger}
}

// RegisterRoutes mounts course routes. Course pages are public; optionalMw
// resolves the viewer's session without ever rejecting the request.
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux, optionalMw func(http.Handler) http.Handler) {
	mux.Handle("/courses/", optionalMw(http.HandlerFunc(h.handleCourse)))
}

func (h *CourseHandler) handleCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/courses/")
	switch {
	case strings.HasSuffix(rest, "/reviews"):
		h.getCourseReviews(w, r, strings.TrimSuffix(rest, "/reviews"))
	case !strings.Contains(rest, "/"):
		h.getCourse(w, r, rest)
	default:
		http.NotFound(w, r)
	}
}

// getCourse returns the stored course row as-is. Every failure, a missing
// row included, maps to the same generic 500 payload so no internal detail
// reaches the client.
func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request, courseID string) {
	course, err := h.courseService.GetCourseByID(r.Context(), courseID)
	if err != nil {
		h.logger.Error().Err(err).Str("course_id", courseID).Msg("Course fetch failed")
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch course")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}

func (h *CourseHandler) getCourseReviews(w http.ResponseWriter, r *http.Request, courseID string) {
	reviews, err := h.courseService.GetCourseReviews(r.Context(), courseID)
	if err != nil {
		h.logger.Error().Err(err).Str("course_id", courseID).Msg("Course review listing failed")
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch course reviews")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewCourseReviewResponses(reviews))
}
