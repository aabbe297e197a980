package dto

import (
	"time"

	"app/internal/model"
)

// ProfileCreateDTO is used for incoming profile onboarding requests
type ProfileCreateDTO struct {
	Name      string  `json:"name" validate:"required"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Location  *string `json:"location,omitempty"`
}

// ProfileResponseDTO is returned in API responses for created profiles
type ProfileResponseDTO struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfileResponse maps a profile row to its response shape.
func NewProfileResponse(p *model.Profile) ProfileResponseDTO {
	return ProfileResponseDTO{
		UserID:    p.UserID,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		Location:  p.Location,
		CreatedAt: p.CreatedAt,
	}
}
