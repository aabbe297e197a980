package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"app/internal/logger"
	"app/internal/model"
	"app/internal/service"
)

type fakeCourseService struct {
	courses map[string]*model.Course
	reviews map[string][]model.CourseReview
	err     error
}

func (f *fakeCourseService) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	course, ok := f.courses[courseID]
	if !ok {
		return nil, service.ErrCourseNotFound
	}
	return course, nil
}

func (f *fakeCourseService) GetCourseReviews(ctx context.Context, courseID string) ([]model.CourseReview, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reviews[courseID], nil
}

func passthrough(next http.Handler) http.Handler { return next }

func newCourseMux(svc *fakeCourseService) *http.ServeMux {
	mux := http.NewServeMux()
	NewCourseHandler(svc, logger.New()).RegisterRoutes(mux, passthrough)
	return mux
}

func TestGetCourseFound(t *testing.T) {
	mux := newCourseMux(&fakeCourseService{courses: map[string]*model.Course{
		"c1": {ID: "c1", Name: "Pebble", Location: "CA"},
	}})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/c1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"id":"c1","name":"Pebble","location":"CA"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestGetCourseNotFound(t *testing.T) {
	mux := newCourseMux(&fakeCourseService{courses: map[string]*model.Course{}})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/c9", nil))

	// Missing rows and internal failures share one opaque response.
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Failed to fetch course"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestGetCourseQueryError(t *testing.T) {
	mux := newCourseMux(&fakeCourseService{err: errors.New("pq: connection refused")})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/c1", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "connection refused") {
		t.Fatalf("internal error leaked to client: %s", body)
	}
	if got := strings.TrimSpace(body); got != `{"error":"Failed to fetch course"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestGetCourseMethodNotAllowed(t *testing.T) {
	mux := newCourseMux(&fakeCourseService{courses: map[string]*model.Course{}})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/courses/c1", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestGetCourseReviews(t *testing.T) {
	mux := newCourseMux(&fakeCourseService{reviews: map[string][]model.CourseReview{
		"c1": {{
			Review: model.Review{
				ID:         "r1",
				UserID:     "u1",
				CourseID:   "c1",
				Rating:     5,
				ReviewText: "Classic",
				DatePlayed: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
			},
			ReviewerName: "Ada",
		}},
	}})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/c1/reviews", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(got) != 1 || got[0]["reviewer_name"] != "Ada" || got[0]["date_played"] != "2024-02-02" {
		t.Fatalf("unexpected response: %v", got)
	}
}
