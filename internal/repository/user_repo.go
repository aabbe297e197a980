package repository

import (
	"app/internal/model"
	"context"
	"database/sql"
	"errors"
)

type ProfileRepository interface {
	CreateProfile(ctx context.Context, p *model.Profile) error
	// GetProfileByUserID retrieves a profile by its owning user ID. Returns
	// nil without error when no row exists.
	GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error)
}

type profileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) CreateProfile(ctx context.Context, p *model.Profile) error {
	query := `INSERT INTO profiles (user_id, name, avatar_url, location)
              VALUES ($1, $2, $3, $4) RETURNING user_id, name, avatar_url, location, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, p.UserID, p.Name, p.AvatarURL, p.Location).
		Scan(&p.UserID, &p.Name, &p.AvatarURL, &p.Location, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (r *profileRepo) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	query := `SELECT user_id, name, avatar_url, location, created_at, updated_at FROM profiles WHERE user_id=$1`
	row := r.db.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&p.UserID, &p.Name, &p.AvatarURL, &p.Location, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
