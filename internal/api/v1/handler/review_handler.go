package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ReviewHandler handles review creation
type ReviewHandler struct {
	reviewService service.ReviewService
	validate      *validator.Validate
	logger        zerolog.Logger
}

func NewReviewHandler(reviewService service.ReviewService, v *validator.Validate, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 review routes
func (h *ReviewHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/reviews", authMw(http.HandlerFunc(h.createReview)))
}

func (h *ReviewHandler) createReview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.ReviewCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	datePlayed, err := time.Parse("2006-01-02", req.DatePlayed)
	if err != nil {
		http.Error(w, "Invalid date_played: "+err.Error(), http.StatusBadRequest)
		return
	}

	review := &model.Review{
		UserID:     userID,
		CourseID:   req.CourseID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
		DatePlayed: datePlayed,
	}
	created, err := h.reviewService.CreateReview(r.Context(), review)
	if err != nil {
		if errors.Is(err, service.ErrCourseRequired) {
			http.Error(w, "Unknown course: "+req.CourseID, http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Review creation failed")
		writeJSONError(w, http.StatusInternalServerError, "Failed to create review")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}
