package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggerMiddlewarePassthrough(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r := httptest.NewRequest(http.MethodGet, "/courses/c1", nil)
	w := httptest.NewRecorder()

	LoggerMiddleware(inner).ServeHTTP(w, r)

	if w.Code != http.StatusTeapot {
		t.Fatalf("expected the inner status to pass through, got %d", w.Code)
	}
}

func TestLoggerMiddlewareDefaultsToOK(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	LoggerMiddleware(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 when the handler writes no status, got %d", w.Code)
	}
}
