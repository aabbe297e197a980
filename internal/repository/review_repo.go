package repository

import (
	"context"
	"database/sql"

	"app/internal/model"
)

// ReviewRepository defines the interface for interacting with review data
type ReviewRepository interface {
	// GetReviewsByUserID retrieves all reviews owned by userID, each joined
	// with its referenced course, most recent play date first.
	GetReviewsByUserID(ctx context.Context, userID string) ([]model.UserCourseReview, error)
	// GetReviewsByCourseID retrieves all reviews for a course joined with
	// the reviewer's profile name, most recent play date first.
	GetReviewsByCourseID(ctx context.Context, courseID string) ([]model.CourseReview, error)
	CreateReview(ctx context.Context, rv *model.Review) error
}

type reviewRepo struct {
	db *sql.DB
}

// NewReviewRepo creates a new ReviewRepository
func NewReviewRepo(db *sql.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

// GetReviewsByUserID retrieves all reviews for a user with course details
func (r *reviewRepo) GetReviewsByUserID(ctx context.Context, userID string) ([]model.UserCourseReview, error) {
	var reviews []model.UserCourseReview
	query := `
		SELECT rv.id, rv.user_id, rv.course_id, rv.rating, rv.review_text, rv.date_played, rv.created_at,
		       c.name, c.location
		FROM reviews rv
		JOIN courses c ON c.id = rv.course_id
		WHERE rv.user_id = $1
		ORDER BY rv.date_played DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rv model.UserCourseReview
		if err := rows.Scan(
			&rv.ID,
			&rv.UserID,
			&rv.CourseID,
			&rv.Rating,
			&rv.ReviewText,
			&rv.DatePlayed,
			&rv.CreatedAt,
			&rv.CourseName,
			&rv.CourseLocation,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	// If no reviews found, return an empty slice, not nil
	if len(reviews) == 0 {
		return []model.UserCourseReview{}, nil
	}

	return reviews, nil
}

// GetReviewsByCourseID retrieves all reviews for a course with reviewer names
func (r *reviewRepo) GetReviewsByCourseID(ctx context.Context, courseID string) ([]model.CourseReview, error) {
	var reviews []model.CourseReview
	query := `
		SELECT rv.id, rv.user_id, rv.course_id, rv.rating, rv.review_text, rv.date_played, rv.created_at,
		       p.name
		FROM reviews rv
		JOIN profiles p ON p.user_id = rv.user_id
		WHERE rv.course_id = $1
		ORDER BY rv.date_played DESC
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rv model.CourseReview
		if err := rows.Scan(
			&rv.ID,
			&rv.UserID,
			&rv.CourseID,
			&rv.Rating,
			&rv.ReviewText,
			&rv.DatePlayed,
			&rv.CreatedAt,
			&rv.ReviewerName,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(reviews) == 0 {
		return []model.CourseReview{}, nil
	}

	return reviews, nil
}

// CreateReview inserts a new review and returns the created record
func (r *reviewRepo) CreateReview(ctx context.Context, rv *model.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, course_id, rating, review_text, date_played)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, course_id, rating, review_text, date_played, created_at
	`
	return r.db.QueryRowContext(ctx, query, rv.ID, rv.UserID, rv.CourseID, rv.Rating, rv.ReviewText, rv.DatePlayed).
		Scan(&rv.ID, &rv.UserID, &rv.CourseID, &rv.Rating, &rv.ReviewText, &rv.DatePlayed, &rv.CreatedAt)
}
