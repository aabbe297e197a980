package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               string `envconfig:"PORT" default:"8080"`
	Environment        string `envconfig:"ENV" default:"development"`
	DBConnectionString string `envconfig:"DATABASE_URL" required:"true"`
	MigrateOnStart     bool   `envconfig:"MIGRATE_ON_START" default:"true"`

	// Session token verification. JWTSecret is used directly unless
	// JWTSecretName points at a Secret Manager resource, in which case the
	// secret is fetched at startup and overrides it.
	JWTSecret     string `envconfig:"SUPABASE_JWT_SECRET"`
	JWTSecretName string `envconfig:"SUPABASE_JWT_SECRET_NAME"`

	// S3-compatible storage for profile photos.
	S3URL       string `envconfig:"STORAGE_S3_URL"`
	S3Bucket    string `envconfig:"STORAGE_S3_BUCKET" default:"avatars"`
	S3Region    string `envconfig:"STORAGE_S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"STORAGE_S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"STORAGE_S3_SECRET_KEY"`

	// Pub/Sub review event publishing. Publishing is disabled when the
	// project ID is empty.
	GCPProjectID     string `envconfig:"GCP_PROJECT_ID"`
	ReviewEventTopic string `envconfig:"REVIEW_EVENT_TOPIC" default:"review-events"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Per-client request rate limiting.
	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
