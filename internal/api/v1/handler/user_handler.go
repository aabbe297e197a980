package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"
	"app/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// UserHandler handles current-user endpoints
type UserHandler struct {
	userService  service.UserService
	photoService service.PhotoService
	validate     *validator.Validate
	logger       zerolog.Logger
}

func NewUserHandler(userService service.UserService, photoService service.PhotoService, v *validator.Validate, logger zerolog.Logger) *UserHandler {
	return &UserHandler{userService: userService, photoService: photoService, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 user routes. /users/me takes the optional chain
// because GET must serve anonymous callers; the POST branch enforces its own
// auth via the context check. The remaining routes require authentication.
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMw, optionalMw func(http.Handler) http.Handler) {
	mux.Handle("/users/me", optionalMw(http.HandlerFunc(h.handleMe)))
	mux.Handle("/users/me/reviews", authMw(http.HandlerFunc(h.getReviews)))
	mux.Handle("/users/me/avatar-upload", authMw(http.HandlerFunc(h.initiateAvatarUpload)))
}

func (h *UserHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getCurrentUser(w, r)
	case http.MethodPost:
		h.createProfile(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// getCurrentUser returns the caller's user view. No session at all is 401;
// a failed identity check or a missing profile row is a server-side fault.
func (h *UserHandler) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetCurrentUser(r.Context(), util.TokenFromRequest(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("Current user lookup failed")
		switch {
		case errors.Is(err, service.ErrIdentityLookup):
			writeJSONError(w, http.StatusInternalServerError, "Failed to verify session")
		case errors.Is(err, service.ErrProfileNotFound):
			writeJSONError(w, http.StatusInternalServerError, "Failed to fetch profile")
		default:
			writeJSONError(w, http.StatusInternalServerError, "Failed to fetch user")
		}
		return
	}
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "Not signed in")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *UserHandler) createProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.ProfileCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	profile := &model.Profile{
		UserID:    userID,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Location:  req.Location,
	}
	created, err := h.userService.CreateProfile(r.Context(), profile)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Profile creation failed")
		writeJSONError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dto.NewProfileResponse(created))
}

func (h *UserHandler) getReviews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	reviews, err := h.userService.GetReviews(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Review listing failed")
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.NewReviewResponses(reviews))
}

func (h *UserHandler) initiateAvatarUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.AvatarUploadDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	storagePath, uploadURL, err := h.photoService.InitiateAvatarUpload(r.Context(), userID, req.Filename)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to prepare upload")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.AvatarUploadResponseDTO{
		StoragePath: storagePath,
		UploadURL:   uploadURL,
	})
}
