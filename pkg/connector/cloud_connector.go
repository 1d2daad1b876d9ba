package connector

import (
	"errors"

	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"

	awsconfig "github.com/primait/auroramap/pkg/connector/services/aws"
	"github.com/primait/auroramap/pkg/io/logging"
)

func NewCloudConnector(profile string, endpointUrl string) (*CloudConnector, error) {
	cc := &CloudConnector{
		AWSConfig: awsconfig.InitAWSConfiguration(profile, endpointUrl),
		logger:    logging.GetLogManager(),
	}
	if !cc.AWSConfig.TestConnection() {
		return nil, errors.New("invalid credentials or expired session")
	}
	return cc, nil
}

// DiscoverAll scans the given regions (all enabled regions when empty) and
// returns the raw inventory next to the classified endpoints.
func (cc *CloudConnector) DiscoverAll(regions []string) map[string]interface{} {
	aurora := cc.AWSConfig.DiscoverAuroraTopology(regions)
	cc.logger.Info("Aurora scan complete", "clusters", len(aurora.Clusters), "endpoints", len(aurora.Endpoints))
	return map[string]interface{}{
		"Whoami":    cc.AWSConfig.DiscoverWhoami(),
		"Clusters":  aurora.Clusters,
		"Instances": aurora.Instances,
		"Endpoints": aurora.Endpoints,
	}
}

func (cc *CloudConnector) FindCluster(clusterID string, region string) (rdsTypes.DBCluster, []rdsTypes.DBInstance, error) {
	return cc.AWSConfig.FindCluster(clusterID, region)
}
