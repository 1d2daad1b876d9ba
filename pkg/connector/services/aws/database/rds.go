package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/notdodo/arner"
	"github.com/sourcegraph/conc/iter"

	"github.com/primait/auroramap/pkg/io/logging"
	"github.com/primait/auroramap/pkg/topology"
)

// ErrClusterNotFound means the requested cluster identifier matched zero
// clusters in the requested region.
var ErrClusterNotFound = errors.New("cluster not found")

func newRDSClient(cfg aws.Config, region string) *RDSClient {
	regionCfg := cfg.Copy()
	regionCfg.Region = region
	return &RDSClient{
		client: rds.NewFromConfig(regionCfg),
		Config: regionCfg,
		logger: logging.GetLogManager(),
	}
}

// ScanRegions enumerates Aurora clusters and classifies their member
// endpoints in every region. Regions are scanned in parallel and
// independently: a failed region logs a warning and contributes nothing.
func ScanRegions(cfg aws.Config, regions []string) *Aurora {
	scans := iter.Map(regions, func(region *string) regionScan {
		return newRDSClient(cfg, *region).scanRegion(*region)
	})
	return aggregate(scans)
}

// FindCluster locates a single cluster and the Aurora instances of its
// region. Here ClusterNotFound is fatal and surfaced to the caller.
func FindCluster(cfg aws.Config, clusterID string, region string) (rdsTypes.DBCluster, []rdsTypes.DBInstance, error) {
	return newRDSClient(cfg, region).findCluster(context.TODO(), clusterID)
}

func (rc *RDSClient) findCluster(ctx context.Context, clusterID string) (rdsTypes.DBCluster, []rdsTypes.DBInstance, error) {
	clusters, err := rc.clustersForRegion(ctx, clusterID)
	if err != nil {
		return rdsTypes.DBCluster{}, nil, err
	}
	if len(clusters) == 0 {
		return rdsTypes.DBCluster{}, nil, fmt.Errorf("%w: %s in %s", ErrClusterNotFound, clusterID, rc.Config.Region)
	}

	instances, err := rc.instancesForRegion(ctx)
	if err != nil {
		return rdsTypes.DBCluster{}, nil, err
	}
	return clusters[0], instances, nil
}

func (rc *RDSClient) scanRegion(region string) regionScan {
	scan := regionScan{region: region}

	clusters, err := rc.clustersForRegion(context.TODO(), "")
	if err != nil {
		scan.err = err
		return scan
	}
	instances, err := rc.instancesForRegion(context.TODO())
	if err != nil {
		scan.err = err
		return scan
	}

	scan.clusters = clusters
	scan.instances = instances
	for _, cluster := range clusters {
		arned, _ := arner.ParseARN(aws.ToString(cluster.DBClusterArn))
		classifier, err := topology.NewClassifier(cluster)
		if err != nil {
			rc.logger.Warn("Skipping malformed cluster descriptor", "region", region, "resource", arned.Resource, "err", err)
			continue
		}
		endpoints := classifier.Classify(instances, region)
		rc.logger.Debug("Classified Aurora cluster", "region", region, "cluster", classifier.ClusterID(), "endpoints", len(endpoints))
		scan.endpoints = append(scan.endpoints, endpoints...)
	}
	return scan
}

func (rc *RDSClient) clustersForRegion(ctx context.Context, clusterID string) ([]rdsTypes.DBCluster, error) {
	input := &rds.DescribeDBClustersInput{}
	if clusterID != "" {
		input.DBClusterIdentifier = aws.String(clusterID)
	}

	output, err := rc.client.DescribeDBClusters(ctx, input)
	if err != nil {
		var notFound *rdsTypes.DBClusterNotFoundFault
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s in %s", ErrClusterNotFound, clusterID, rc.Config.Region)
		}
		return nil, fmt.Errorf("describing clusters in %s: %w", rc.Config.Region, err)
	}
	return output.DBClusters, nil
}

func (rc *RDSClient) instancesForRegion(ctx context.Context) ([]rdsTypes.DBInstance, error) {
	output, err := rc.client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
	if err != nil {
		return nil, fmt.Errorf("describing instances in %s: %w", rc.Config.Region, err)
	}

	instances := make([]rdsTypes.DBInstance, 0, len(output.DBInstances))
	for _, instance := range output.DBInstances {
		if topology.IsAuroraEngine(aws.ToString(instance.Engine)) {
			instances = append(instances, instance)
		}
	}
	return instances, nil
}

func aggregate(scans []regionScan) *Aurora {
	logger := logging.GetLogManager()
	aurora := &Aurora{}
	for _, scan := range scans {
		if scan.err != nil {
			logger.Warn("Region scan failed", "region", scan.region, "err", scan.err)
			continue
		}
		aurora.Clusters = append(aurora.Clusters, scan.clusters...)
		aurora.Instances = append(aurora.Instances, scan.instances...)
		aurora.Endpoints = append(aurora.Endpoints, scan.endpoints...)
	}
	return aurora
}
