package awsconnector

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"

	"github.com/primait/auroramap/pkg/connector/services/aws/database"
	"github.com/primait/auroramap/pkg/connector/services/aws/ec2"
	"github.com/primait/auroramap/pkg/connector/services/aws/sts"
	"github.com/primait/auroramap/pkg/io/logging"
)

var countRetries = 10

func InitAWSConfiguration(profile string, awsEndpoint string) (awsc AWSConfig) {
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if awsEndpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           awsEndpoint,
				SigningRegion: os.Getenv("AWS_DEFAULT_REGION"),
			}, nil
		}

		// returning EndpointNotFoundError will allow the service to fallback to it's default resolution
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	// Load the Shared AWS Configuration (~/.aws/config)
	cfg, _ := config.LoadDefaultConfig(context.TODO(), config.WithSharedConfigProfile(profile),
		config.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), countRetries)
		}),
		config.WithEndpointResolverWithOptions(customResolver),
	)
	cfg.RetryMode = aws.RetryModeStandard
	awsc = AWSConfig{Profile: profile, Config: cfg, logger: logging.GetLogManager()}
	// Get the AWS regions dynamically
	ec2.ListAndSaveRegions(cfg)
	return
}

func (ac *AWSConfig) TestConnection() bool {
	_, err := ac.Credentials.Retrieve(context.TODO())
	return err == nil
}

func (ac *AWSConfig) DiscoverWhoami() interface{} {
	return sts.Whoami(ac.Config)
}

// Regions returns the selected regions when given, the account's enabled
// regions otherwise.
func (ac *AWSConfig) Regions(selected []string) []string {
	if len(selected) > 0 {
		return selected
	}
	return ec2.Regions
}

func (ac *AWSConfig) DiscoverAuroraTopology(regions []string) *database.Aurora {
	return database.ScanRegions(ac.Config, ac.Regions(regions))
}

func (ac *AWSConfig) FindCluster(clusterID string, region string) (rdsTypes.DBCluster, []rdsTypes.DBInstance, error) {
	return database.FindCluster(ac.Config, clusterID, region)
}
