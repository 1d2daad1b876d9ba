package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"
)

// BuildIAMAuthToken returns a short-lived IAM authentication token usable as
// the password for a single endpoint.
func BuildIAMAuthToken(ctx context.Context, cfg aws.Config, endpoint string, port int32, username string) (string, error) {
	token, err := auth.BuildAuthToken(ctx, fmt.Sprintf("%s:%d", endpoint, port), cfg.Region, username, cfg.Credentials)
	if err != nil {
		return "", fmt.Errorf("building IAM auth token for %s: %w", endpoint, err)
	}
	return token, nil
}
