package topology

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
)

// Classifier assigns a Role to every instance belonging to a single cluster.
//
// Role policy: an instance is a writer iff its cluster membership record
// carries the writer flag. Non-writers on a global-database engine are
// classified as global members, everything else is a regional reader.
// Membership is resolved through a map keyed by instance identifier that is
// validated when the Classifier is built.
type Classifier struct {
	clusterID string
	members   map[string]rdsTypes.DBClusterMember
}

func NewClassifier(cluster rdsTypes.DBCluster) (*Classifier, error) {
	clusterID := aws.ToString(cluster.DBClusterIdentifier)
	if clusterID == "" {
		return nil, fmt.Errorf("cluster descriptor has no identifier")
	}

	members := make(map[string]rdsTypes.DBClusterMember, len(cluster.DBClusterMembers))
	for _, member := range cluster.DBClusterMembers {
		memberID := aws.ToString(member.DBInstanceIdentifier)
		if memberID == "" {
			return nil, fmt.Errorf("cluster %s has a member without an instance identifier", clusterID)
		}
		members[memberID] = member
	}

	return &Classifier{clusterID: clusterID, members: members}, nil
}

func (c *Classifier) ClusterID() string {
	return c.clusterID
}

// Classify keeps only the instances that are members of the cluster and
// normalizes them, preserving the input order. Instances whose endpoint has
// not been provisioned yet are skipped.
func (c *Classifier) Classify(instances []rdsTypes.DBInstance, region string) []Endpoint {
	endpoints := make([]Endpoint, 0, len(c.members))
	for _, instance := range instances {
		instanceID := aws.ToString(instance.DBInstanceIdentifier)
		member, ok := c.members[instanceID]
		if !ok {
			continue
		}
		if instance.Endpoint == nil {
			continue
		}

		endpoints = append(endpoints, Endpoint{
			ID:            instanceID,
			Endpoint:      aws.ToString(instance.Endpoint.Address),
			Port:          aws.ToInt32(instance.Endpoint.Port),
			InstanceClass: aws.ToString(instance.DBInstanceClass),
			Region:        region,
			Role:          memberRole(member, aws.ToString(instance.Engine)),
		})
	}
	return endpoints
}

func memberRole(member rdsTypes.DBClusterMember, engine string) Role {
	if aws.ToBool(member.IsClusterWriter) {
		return RoleWrite
	}
	if IsGlobalEngine(engine) {
		return RoleGlobal
	}
	return RoleRead
}

// IsGlobalEngine reports whether the engine name marks a member of a
// cross-region global database.
func IsGlobalEngine(engine string) bool {
	return strings.Contains(strings.ToLower(engine), "global")
}

// IsAuroraEngine filters the unfiltered DescribeDBInstances output down to
// Aurora engines.
func IsAuroraEngine(engine string) bool {
	return strings.HasPrefix(strings.ToLower(engine), "aurora")
}
