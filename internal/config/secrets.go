package config

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// ResolveJWTSecret fills in cfg.JWTSecret from Secret Manager when
// cfg.JWTSecretName is set. The name must be a full secret version resource
// name (projects/*/secrets/*/versions/*).
func ResolveJWTSecret(ctx context.Context, cfg *Config, opts ...option.ClientOption) error {
	if cfg.JWTSecretName == "" {
		if cfg.JWTSecret == "" {
			return fmt.Errorf("neither SUPABASE_JWT_SECRET nor SUPABASE_JWT_SECRET_NAME is set")
		}
		return nil
	}

	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: cfg.JWTSecretName,
	})
	if err != nil {
		return fmt.Errorf("failed to access secret %s: %w", cfg.JWTSecretName, err)
	}

	cfg.JWTSecret = string(resp.GetPayload().GetData())
	return nil
}
