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
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
)

type fakeUserService struct {
	users    map[string]*model.CurrentUser // keyed by token
	reviews  map[string][]model.UserCourseReview
	err      error
	profiles []*model.Profile
}

func (f *fakeUserService) GetCurrentUser(ctx context.Context, token string) (*model.CurrentUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	if token == "" {
		return nil, nil
	}
	return f.users[token], f.errForToken(token)
}

func (f *fakeUserService) errForToken(token string) error {
	if _, ok := f.users[token]; !ok {
		return service.ErrProfileNotFound
	}
	return nil
}

func (f *fakeUserService) CreateProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p.CreatedAt = time.Now()
	f.profiles = append(f.profiles, p)
	return p, nil
}

func (f *fakeUserService) GetReviews(ctx context.Context, userID string) ([]model.UserCourseReview, error) {
	if f.err != nil {
		return nil, f.err
	}
	rows, ok := f.reviews[userID]
	if !ok {
		return []model.UserCourseReview{}, nil
	}
	return rows, nil
}

type fakePhotoService struct {
	err error
}

func (f *fakePhotoService) InitiateAvatarUpload(ctx context.Context, userID, filename string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return "avatars/" + userID + ".png", "https://storage.example.com/put/" + userID, nil
}

// injectUser stands in for the auth middleware in handler tests.
func injectUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newUserMux(svc *fakeUserService, userID string) *http.ServeMux {
	mux := http.NewServeMux()
	v := validator.New(validator.WithRequiredStructEnabled())
	NewUserHandler(svc, &fakePhotoService{}, v, logger.New()).RegisterRoutes(mux, injectUser(userID), injectUser(userID))
	return mux
}

func TestGetCurrentUserAnonymous(t *testing.T) {
	mux := newUserMux(&fakeUserService{users: map[string]*model.CurrentUser{}}, "")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/me", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous caller, got %d", w.Code)
	}
}

func TestGetCurrentUserSignedIn(t *testing.T) {
	mux := newUserMux(&fakeUserService{users: map[string]*model.CurrentUser{
		"tok-1": {ID: "u1", Email: "u1@example.com", Name: "Ada"},
	}}, "u1")

	r := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	r.Header.Set("Authorization", "Bearer tok-1")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got model.CurrentUser
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if got.ID != "u1" || got.Email != "u1@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetCurrentUserMissingProfile(t *testing.T) {
	mux := newUserMux(&fakeUserService{users: map[string]*model.CurrentUser{}}, "u1")

	r := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	r.Header.Set("Authorization", "Bearer tok-unknown")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for identity without profile, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Failed to fetch profile"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestCreateProfile(t *testing.T) {
	svc := &fakeUserService{users: map[string]*model.CurrentUser{}}
	mux := newUserMux(svc, "u1")

	body := `{"name":"Ada","location":"Lima"}`
	r := httptest.NewRequest(http.MethodPost, "/users/me", strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(svc.profiles) != 1 || svc.profiles[0].UserID != "u1" || svc.profiles[0].Name != "Ada" {
		t.Fatalf("unexpected persisted profile: %+v", svc.profiles)
	}
}

func TestCreateProfileFailure(t *testing.T) {
	svc := &fakeUserService{err: errors.New("insert failed")}
	mux := newUserMux(svc, "u1")

	r := httptest.NewRequest(http.MethodPost, "/users/me", strings.NewReader(`{"name":"Ada"}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Failed to create profile"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestCreateProfileValidation(t *testing.T) {
	mux := newUserMux(&fakeUserService{users: map[string]*model.CurrentUser{}}, "u1")

	r := httptest.NewRequest(http.MethodPost, "/users/me", strings.NewReader(`{"location":"Lima"}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", w.Code)
	}
}

func TestGetUserReviewsEmpty(t *testing.T) {
	mux := newUserMux(&fakeUserService{users: map[string]*model.CurrentUser{}, reviews: map[string][]model.UserCourseReview{}}, "u1")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/me/reviews", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestGetUserReviewsFlattened(t *testing.T) {
	reviews := map[string][]model.UserCourseReview{
		"u1": {
			{Review: model.Review{ID: "2", CourseID: "c2", Rating: 4, DatePlayed: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}, CourseName: "B", CourseLocation: "Y"},
			{Review: model.Review{ID: "1", CourseID: "c1", Rating: 5, DatePlayed: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}, CourseName: "A", CourseLocation: "X"},
		},
	}
	mux := newUserMux(&fakeUserService{users: map[string]*model.CurrentUser{}, reviews: reviews}, "u1")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/me/reviews", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(got) != 2 || got[0]["id"] != "2" || got[1]["id"] != "1" {
		t.Fatalf("expected newest play date first, got %v", got)
	}
	course, ok := got[0]["course"].(map[string]any)
	if !ok || course["name"] != "B" || course["location"] != "Y" {
		t.Fatalf("expected flattened course payload, got %v", got[0])
	}
}

func TestInitiateAvatarUpload(t *testing.T) {
	mux := newUserMux(&fakeUserService{users: map[string]*model.CurrentUser{}}, "u1")

	r := httptest.NewRequest(http.MethodPost, "/users/me/avatar-upload", strings.NewReader(`{"filename":"me.png"}`))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if got["storage_path"] != "avatars/u1.png" || got["upload_url"] == "" {
		t.Fatalf("unexpected response: %v", got)
	}
}
