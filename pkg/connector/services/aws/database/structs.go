package database

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"

	"github.com/primait/auroramap/pkg/io/logging"
	"github.com/primait/auroramap/pkg/topology"
)

// rdsAPI is the subset of the RDS client the scanner calls.
type rdsAPI interface {
	DescribeDBClusters(ctx context.Context, params *rds.DescribeDBClustersInput, optFns ...func(*rds.Options)) (*rds.DescribeDBClustersOutput, error)
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// Aurora aggregates everything a multi-region scan discovered.
type Aurora struct {
	Clusters  []rdsTypes.DBCluster
	Instances []rdsTypes.DBInstance
	Endpoints []topology.Endpoint
}

type RDSClient struct {
	client rdsAPI
	Config aws.Config
	logger logging.LogManager
}

// regionScan carries one region's contribution. A non-nil err voids the whole
// contribution without affecting other regions.
type regionScan struct {
	region    string
	clusters  []rdsTypes.DBCluster
	instances []rdsTypes.DBInstance
	endpoints []topology.Endpoint
	err       error
}
