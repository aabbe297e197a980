package service

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/repository"
	"app/internal/util"
)

var (
	// ErrIdentityLookup means a session token was presented but the
	// identity check failed. Unlike tolerant session resolution on public
	// pages, this is the auth gate for personalized data and propagates.
	ErrIdentityLookup = errors.New("identity lookup failed")
	// ErrProfileNotFound means an identity exists but its profile row does
	// not. Every onboarded identity must have a profile, so this signals a
	// data-integrity problem rather than an anonymous caller.
	ErrProfileNotFound = errors.New("profile not found")
)

type UserService interface {
	// GetCurrentUser resolves the session token to the authenticated
	// user's view. An empty token yields (nil, nil): anonymous is a valid
	// state, not an error.
	GetCurrentUser(ctx context.Context, token string) (*model.CurrentUser, error)
	CreateProfile(ctx context.Context, p *model.Profile) (*model.Profile, error)
	GetReviews(ctx context.Context, userID string) ([]model.UserCourseReview, error)
}

type userService struct {
	profileRepo repository.ProfileRepository
	reviewRepo  repository.ReviewRepository
	jwtSecret   string
}

func NewUserService(profileRepo repository.ProfileRepository, reviewRepo repository.ReviewRepository, jwtSecret string) UserService {
	return &userService{profileRepo: profileRepo, reviewRepo: reviewRepo, jwtSecret: jwtSecret}
}

func (s *userService) GetCurrentUser(ctx context.Context, token string) (*model.CurrentUser, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := util.ValidateSessionToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityLookup, err)
	}

	profile, err := s.profileRepo.GetProfileByUserID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileNotFound, err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	// Email comes from the identity claims. The profile row never carries
	// the authoritative address.
	return &model.CurrentUser{
		ID:       profile.UserID,
		Email:    claims.Email,
		Name:     profile.Name,
		Image:    profile.AvatarURL,
		Location: profile.Location,
	}, nil
}

func (s *userService) CreateProfile(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	err := s.profileRepo.CreateProfile(ctx, p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *userService) GetReviews(ctx context.Context, userID string) ([]model.UserCourseReview, error) {
	reviews, err := s.reviewRepo.GetReviewsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
