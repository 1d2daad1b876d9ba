package secrets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/primait/auroramap/pkg/replication"
)

// GetCredentials reads a username/password secret from Secrets Manager,
// using the JSON key layout of RDS-managed secrets.
func GetCredentials(ctx context.Context, cfg aws.Config, secretID string, database string) (replication.Credentials, error) {
	client := secretsmanager.NewFromConfig(cfg)

	output, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return replication.Credentials{}, fmt.Errorf("fetching secret %s: %w", secretID, err)
	}

	var secret struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal([]byte(aws.ToString(output.SecretString)), &secret); err != nil {
		return replication.Credentials{}, fmt.Errorf("unmarshalling secret %s: %w", secretID, err)
	}

	return replication.Credentials{
		Database: database,
		Username: secret.Username,
		Password: secret.Password,
	}, nil
}
