package replication

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primait/auroramap/pkg/topology"
)

var testCredentials = Credentials{Database: "db", Username: "u", Password: "p"}

func testEndpoints() []topology.Endpoint {
	return []topology.Endpoint{
		{ID: "w1", Endpoint: "w1.example.com", Port: 5432, Region: "eu-west-1", Role: topology.RoleWrite},
		{ID: "r1", Endpoint: "r1.example.com", Port: 5432, Region: "eu-west-1", Role: topology.RoleRead},
	}
}

func TestBuildConfigDefaults(t *testing.T) {
	config, err := BuildConfig(testEndpoints(), testCredentials)
	require.NoError(t, err)

	assert.Equal(t, "postgres", config.Dialect)
	assert.Equal(t, 10, config.Pool.Max)
	assert.Equal(t, 0, config.Pool.Min)
	assert.Equal(t, 10000, config.Pool.Idle)
	assert.Equal(t, 30000, config.Pool.Acquire)
	assert.Equal(t, 15000, config.Pool.Evict)
	assert.Equal(t, 5, config.Retry.Max)
	assert.Contains(t, config.Retry.Match, "connection refused")
	assert.False(t, config.Logging)

	assert.Equal(t, "w1.example.com", config.Replication.Write.Host)
	assert.Equal(t, int32(5432), config.Replication.Write.Port)
	assert.Equal(t, "db", config.Replication.Write.Database)
	require.Len(t, config.Replication.Read, 1)
	assert.Equal(t, "r1.example.com", config.Replication.Read[0].Host)
	assert.Equal(t, int32(5432), config.Replication.Read[0].Port)
}

func TestBuildConfigNoWriter(t *testing.T) {
	endpoints := []topology.Endpoint{
		{ID: "r1", Endpoint: "r1.example.com", Port: 5432, Role: topology.RoleRead},
	}
	config, err := BuildConfig(endpoints, testCredentials)
	assert.Nil(t, config)
	assert.ErrorIs(t, err, ErrNoWriter)

	config, err = BuildConfig(nil, testCredentials)
	assert.Nil(t, config)
	assert.ErrorIs(t, err, ErrNoWriter)
}

func TestBuildConfigMissingCredentials(t *testing.T) {
	_, err := BuildConfig(testEndpoints(), Credentials{Database: "db", Username: "u"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = BuildConfig(testEndpoints(), Credentials{})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestBuildConfigFirstWriterWins(t *testing.T) {
	endpoints := []topology.Endpoint{
		{ID: "w1", Endpoint: "w1.example.com", Port: 5432, Role: topology.RoleWrite},
		{ID: "w2", Endpoint: "w2.example.com", Port: 5432, Role: topology.RoleWrite},
		{ID: "r1", Endpoint: "r1.example.com", Port: 5432, Role: topology.RoleRead},
		{ID: "r2", Endpoint: "r2.example.com", Port: 5433, Role: topology.RoleRead},
	}
	config, err := BuildConfig(endpoints, testCredentials)
	require.NoError(t, err)

	assert.Equal(t, "w1.example.com", config.Replication.Write.Host)
	require.Len(t, config.Replication.Read, 2)
	assert.Equal(t, "r1.example.com", config.Replication.Read[0].Host)
	assert.Equal(t, "r2.example.com", config.Replication.Read[1].Host)
	assert.Equal(t, int32(5433), config.Replication.Read[1].Port)
}

func TestBuildConfigGlobalReaders(t *testing.T) {
	endpoints := append(testEndpoints(), topology.Endpoint{
		ID: "g1", Endpoint: "g1.example.com", Port: 5432, Role: topology.RoleGlobal,
	})

	config, err := BuildConfig(endpoints, testCredentials)
	require.NoError(t, err)
	assert.Len(t, config.Replication.Read, 1)

	config, err = BuildConfig(endpoints, testCredentials, WithGlobalReaders())
	require.NoError(t, err)
	require.Len(t, config.Replication.Read, 2)
	assert.Equal(t, "g1.example.com", config.Replication.Read[1].Host)
}

func TestBuildConfigIdempotent(t *testing.T) {
	first, err := BuildConfig(testEndpoints(), testCredentials)
	require.NoError(t, err)
	second, err := BuildConfig(testEndpoints(), testCredentials)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildConfigOptions(t *testing.T) {
	config, err := BuildConfig(testEndpoints(), testCredentials,
		WithDialect("postgresql"),
		WithPool(Pool{Max: 20, Min: 2, Idle: 5000, Acquire: 10000, Evict: 30000}),
		WithRetry(Retry{Match: []string{"connection refused"}, Max: 3}),
		WithLogging(true),
		WithDialectOptions(map[string]interface{}{"sslmode": "require"}),
	)
	require.NoError(t, err)

	assert.Equal(t, "postgresql", config.Dialect)
	assert.Equal(t, 20, config.Pool.Max)
	assert.Equal(t, 2, config.Pool.Min)
	assert.Equal(t, 3, config.Retry.Max)
	assert.True(t, config.Logging)
	assert.Equal(t, "require", config.DialectOptions["sslmode"])
}

func TestLoadOverrides(t *testing.T) {
	content := `
pool:
  max: 25
  idle: 2000
retry:
  max: 2
  match:
    - connection refused
includeGlobalReaders: true
`
	file := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	overrides, err := LoadOverrides(file)
	require.NoError(t, err)

	endpoints := append(testEndpoints(), topology.Endpoint{
		ID: "g1", Endpoint: "g1.example.com", Port: 5432, Role: topology.RoleGlobal,
	})
	config, err := BuildConfig(endpoints, testCredentials, overrides.Options()...)
	require.NoError(t, err)

	assert.Equal(t, 25, config.Pool.Max)
	assert.Equal(t, 2000, config.Pool.Idle)
	// Untouched pool knobs keep their defaults.
	assert.Equal(t, 30000, config.Pool.Acquire)
	assert.Equal(t, 2, config.Retry.Max)
	assert.Equal(t, []string{"connection refused"}, config.Retry.Match)
	assert.Len(t, config.Replication.Read, 2)
}

func TestLoadOverridesMissingFile(t *testing.T) {
	_, err := LoadOverrides(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
