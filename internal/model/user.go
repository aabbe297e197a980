package model

import "time"

// Profile represents a user's onboarded profile row
type Profile struct {
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url"`
	Location  *string   `db:"location" json:"location"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CurrentUser is the view of the authenticated user returned to callers.
// Email always comes from the identity claims, never the profile row.
type CurrentUser struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Image    *string `json:"image"`
	Location *string `json:"location"`
}
