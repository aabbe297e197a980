package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/pubsub"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

// ErrCourseRequired means a review referenced a course that does not exist.
var ErrCourseRequired = errors.New("review must reference an existing course")

// ReviewService defines review operations
type ReviewService interface {
	// ListByUserID retrieves the caller's reviews joined with course
	// details, most recent play date first.
	ListByUserID(ctx context.Context, userID string) ([]model.UserCourseReview, error)
	CreateReview(ctx context.Context, rv *model.Review) (*model.Review, error)
}

type reviewService struct {
	repo       repository.ReviewRepository
	courseRepo repository.CourseRepository
	sanitizer  *bluemonday.Policy
	publisher  pubsub.Publisher
	eventTopic string
	logger     zerolog.Logger
}

// NewReviewService creates a new ReviewService. publisher may be nil, in
// which case review events are not emitted.
func NewReviewService(
	repo repository.ReviewRepository,
	courseRepo repository.CourseRepository,
	publisher pubsub.Publisher,
	eventTopic string,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		repo:       repo,
		courseRepo: courseRepo,
		sanitizer:  bluemonday.StrictPolicy(),
		publisher:  publisher,
		eventTopic: eventTopic,
		logger:     logger.With().Str("service", "ReviewService").Logger(),
	}
}

func (s *reviewService) ListByUserID(ctx context.Context, userID string) ([]model.UserCourseReview, error) {
	return s.repo.GetReviewsByUserID(ctx, userID)
}

// CreateReview persists a new review for rv.UserID. The review text is
// sanitized as untrusted user content before it is stored. A review.created
// event is published best-effort: a publish failure is logged and never
// fails the write.
func (s *reviewService) CreateReview(ctx context.Context, rv *model.Review) (*model.Review, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, rv.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up course %s: %w", rv.CourseID, err)
	}
	if course == nil {
		return nil, ErrCourseRequired
	}

	rv.ID = uuid.NewString()
	rv.ReviewText = s.sanitizer.Sanitize(rv.ReviewText)

	if err := s.repo.CreateReview(ctx, rv); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publishCreated(ctx, rv)
	}

	return rv, nil
}

func (s *reviewService) publishCreated(ctx context.Context, rv *model.Review) {
	payload, err := json.Marshal(map[string]string{
		"event":     "review.created",
		"review_id": rv.ID,
		"user_id":   rv.UserID,
		"course_id": rv.CourseID,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to marshal review event")
		return
	}
	if _, err := s.publisher.Publish(ctx, s.eventTopic, payload); err != nil {
		s.logger.Error().Err(err).Str("review_id", rv.ID).Msg("Failed to publish review event")
	}
}
