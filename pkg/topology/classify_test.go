package topology

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	rdsTypes "github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCluster(clusterID string, writerID string, readerIDs ...string) rdsTypes.DBCluster {
	members := []rdsTypes.DBClusterMember{
		{DBInstanceIdentifier: aws.String(writerID), IsClusterWriter: aws.Bool(true)},
	}
	for _, readerID := range readerIDs {
		members = append(members, rdsTypes.DBClusterMember{
			DBInstanceIdentifier: aws.String(readerID),
			IsClusterWriter:      aws.Bool(false),
		})
	}
	return rdsTypes.DBCluster{
		DBClusterIdentifier: aws.String(clusterID),
		DBClusterMembers:    members,
	}
}

func testInstance(instanceID string, engine string) rdsTypes.DBInstance {
	return rdsTypes.DBInstance{
		DBInstanceIdentifier: aws.String(instanceID),
		DBInstanceClass:      aws.String("db.r6g.large"),
		Engine:               aws.String(engine),
		Endpoint: &rdsTypes.Endpoint{
			Address: aws.String(instanceID + ".cluster.eu-west-1.rds.amazonaws.com"),
			Port:    aws.Int32(5432),
		},
	}
}

func TestClassifySingleWriterAndReaders(t *testing.T) {
	cluster := testCluster("analytics", "w1", "r1", "r2")
	classifier, err := NewClassifier(cluster)
	require.NoError(t, err)
	assert.Equal(t, "analytics", classifier.ClusterID())

	instances := []rdsTypes.DBInstance{
		testInstance("w1", "aurora-postgresql"),
		testInstance("r1", "aurora-postgresql"),
		testInstance("r2", "aurora-postgresql"),
	}
	endpoints := classifier.Classify(instances, "eu-west-1")

	require.Len(t, endpoints, 3)
	writers := 0
	for _, endpoint := range endpoints {
		if endpoint.IsWriter() {
			writers++
		} else {
			assert.Equal(t, RoleRead, endpoint.Role)
		}
		assert.Equal(t, "eu-west-1", endpoint.Region)
		assert.Equal(t, int32(5432), endpoint.Port)
	}
	assert.Equal(t, 1, writers)
}

func TestClassifyPreservesInstanceOrder(t *testing.T) {
	cluster := testCluster("analytics", "w1", "r1", "r2")
	classifier, err := NewClassifier(cluster)
	require.NoError(t, err)

	instances := []rdsTypes.DBInstance{
		testInstance("r2", "aurora-postgresql"),
		testInstance("w1", "aurora-postgresql"),
		testInstance("r1", "aurora-postgresql"),
	}
	endpoints := classifier.Classify(instances, "eu-west-1")

	require.Len(t, endpoints, 3)
	assert.Equal(t, "r2", endpoints[0].ID)
	assert.Equal(t, "w1", endpoints[1].ID)
	assert.Equal(t, "r1", endpoints[2].ID)
}

func TestClassifyGlobalEngine(t *testing.T) {
	cluster := testCluster("global-db", "w1", "g1")
	classifier, err := NewClassifier(cluster)
	require.NoError(t, err)

	instances := []rdsTypes.DBInstance{
		testInstance("w1", "aurora-postgresql"),
		testInstance("g1", "aurora-global"),
	}
	endpoints := classifier.Classify(instances, "eu-west-1")

	require.Len(t, endpoints, 2)
	assert.Equal(t, RoleWrite, endpoints[0].Role)
	assert.Equal(t, RoleGlobal, endpoints[1].Role)
}

func TestClassifySkipsNonMembersAndUnprovisioned(t *testing.T) {
	cluster := testCluster("analytics", "w1", "r1")
	classifier, err := NewClassifier(cluster)
	require.NoError(t, err)

	pending := testInstance("r1", "aurora-postgresql")
	pending.Endpoint = nil
	instances := []rdsTypes.DBInstance{
		testInstance("w1", "aurora-postgresql"),
		testInstance("other-cluster-node", "aurora-postgresql"),
		pending,
	}
	endpoints := classifier.Classify(instances, "eu-west-1")

	require.Len(t, endpoints, 1)
	assert.Equal(t, "w1", endpoints[0].ID)
}

func TestNewClassifierRejectsMissingIdentifiers(t *testing.T) {
	_, err := NewClassifier(rdsTypes.DBCluster{})
	assert.Error(t, err)

	cluster := rdsTypes.DBCluster{
		DBClusterIdentifier: aws.String("analytics"),
		DBClusterMembers:    []rdsTypes.DBClusterMember{{IsClusterWriter: aws.Bool(true)}},
	}
	_, err = NewClassifier(cluster)
	assert.Error(t, err)
}

func TestEngineHelpers(t *testing.T) {
	assert.True(t, IsAuroraEngine("aurora-postgresql"))
	assert.True(t, IsAuroraEngine("Aurora-MySQL"))
	assert.False(t, IsAuroraEngine("postgres"))
	assert.True(t, IsGlobalEngine("aurora-global"))
	assert.False(t, IsGlobalEngine("aurora-postgresql"))
}
