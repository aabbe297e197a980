package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// PhotoService issues presigned URLs so clients upload profile photos
// directly to object storage.
type PhotoService interface {
	// InitiateAvatarUpload returns the storage path and a presigned PUT URL
	// for the caller's new avatar.
	InitiateAvatarUpload(ctx context.Context, userID, filename string) (string, string, error)
}

type photoService struct {
	presignClient *s3.PresignClient
	bucketName    string
	logger        zerolog.Logger
}

// NewPhotoService creates a new PhotoService
func NewPhotoService(s3Client *s3.Client, bucketName string, logger zerolog.Logger) PhotoService {
	return &photoService{
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    bucketName,
		logger:        logger.With().Str("service", "PhotoService").Logger(),
	}
}

func (s *photoService) InitiateAvatarUpload(ctx context.Context, userID, filename string) (string, string, error) {
	// One object per user; re-uploads replace the previous avatar.
	storagePath := fmt.Sprintf("avatars/%s%s", userID, path.Ext(filename))

	req, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(storagePath),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to generate presigned PUT URL")
		return "", "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return storagePath, req.URL, nil
}
