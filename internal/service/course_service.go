package service

import (
	"context"
	"errors"

	"app/internal/model"
	"app/internal/repository"
)

// ErrCourseNotFound means the requested course ID has no matching row.
var ErrCourseNotFound = errors.New("course not found")

// CourseService defines the interface for course operations
type CourseService interface {
	// GetCourseByID retrieves a course by its ID, as stored.
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
	// GetCourseReviews retrieves all reviews for a course.
	GetCourseReviews(ctx context.Context, courseID string) ([]model.CourseReview, error)
}

// courseService is the implementation of CourseService
type courseService struct {
	repo       repository.CourseRepository
	reviewRepo repository.ReviewRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(repo repository.CourseRepository, reviewRepo repository.ReviewRepository) CourseService {
	return &courseService{repo: repo, reviewRepo: reviewRepo}
}

// GetCourseByID retrieves a course by its ID
func (s *courseService) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	course, err := s.repo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

// GetCourseReviews retrieves all reviews for a course
func (s *courseService) GetCourseReviews(ctx context.Context, courseID string) ([]model.CourseReview, error) {
	return s.reviewRepo.GetReviewsByCourseID(ctx, courseID)
}
