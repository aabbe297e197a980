package dto

import "app/internal/model"

// datePlayedLayout is the wire format for play dates.
const datePlayedLayout = "2006-01-02"

// ReviewCreateDTO is used for incoming review creation requests
type ReviewCreateDTO struct {
	CourseID   string `json:"course_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text"`
	DatePlayed string `json:"date_played" validate:"required,datetime=2006-01-02"`
}

// ReviewCourseDTO is the course payload nested in a review response
type ReviewCourseDTO struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// ReviewResponseDTO is returned in API responses for the caller's reviews
type ReviewResponseDTO struct {
	ID         string          `json:"id"`
	CourseID   string          `json:"course_id"`
	Rating     int             `json:"rating"`
	ReviewText string          `json:"review_text"`
	DatePlayed string          `json:"date_played"`
	Course     ReviewCourseDTO `json:"course"`
}

// NewReviewResponse maps one joined review row to its response shape.
// Field renames from the row:
//
//	CourseName     -> course.name
//	CourseLocation -> course.location
//	DatePlayed     -> date_played, formatted as YYYY-MM-DD
func NewReviewResponse(r model.UserCourseReview) ReviewResponseDTO {
	return ReviewResponseDTO{
		ID:         r.ID,
		CourseID:   r.CourseID,
		Rating:     r.Rating,
		ReviewText: r.ReviewText,
		DatePlayed: r.DatePlayed.Format(datePlayedLayout),
		Course: ReviewCourseDTO{
			Name:     r.CourseName,
			Location: r.CourseLocation,
		},
	}
}

// NewReviewResponses maps a row sequence preserving order. Always returns a
// non-nil slice so empty listings encode as [].
func NewReviewResponses(rows []model.UserCourseReview) []ReviewResponseDTO {
	out := make([]ReviewResponseDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewReviewResponse(r))
	}
	return out
}

// CourseReviewResponseDTO is returned in API responses for a course's reviews
type CourseReviewResponseDTO struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
	ReviewText   string `json:"review_text"`
	DatePlayed   string `json:"date_played"`
}

// NewCourseReviewResponses maps per-course review rows preserving order.
func NewCourseReviewResponses(rows []model.CourseReview) []CourseReviewResponseDTO {
	out := make([]CourseReviewResponseDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, CourseReviewResponseDTO{
			ID:           r.ID,
			UserID:       r.UserID,
			ReviewerName: r.ReviewerName,
			Rating:       r.Rating,
			ReviewText:   r.ReviewText,
			DatePlayed:   r.DatePlayed.Format(datePlayedLayout),
		})
	}
	return out
}
