package model

import "time"

// Review represents a review row as stored
type Review struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	CourseID   string    `db:"course_id" json:"course_id"`
	Rating     int       `db:"rating" json:"rating"`
	ReviewText string    `db:"review_text" json:"review_text"`
	DatePlayed time.Time `db:"date_played" json:"date_played"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// UserCourseReview is a review row joined with its referenced course
type UserCourseReview struct {
	Review
	CourseName     string `db:"course_name"`
	CourseLocation string `db:"course_location"`
}

// CourseReview is a review row joined with the reviewer's profile name,
// used for the public per-course listing
type CourseReview struct {
	Review
	ReviewerName string `db:"reviewer_name"`
}
