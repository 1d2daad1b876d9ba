package replication

import (
	"errors"
	"fmt"

	"github.com/primait/auroramap/pkg/topology"
)

var (
	// ErrNoWriter means the endpoint list holds no write-role entry; a client
	// cannot be constructed without a write target.
	ErrNoWriter = errors.New("no writer endpoint in cluster topology")
	// ErrMissingCredentials means database, username or password were left
	// empty. There is deliberately no fallback default.
	ErrMissingCredentials = errors.New("database credentials are not fully specified")
)

const (
	DefaultDialect = "postgres"

	DefaultPoolMax = 10
	DefaultPoolMin = 0
	// Milliseconds, as consumed by the downstream client.
	DefaultPoolIdle    = 10000
	DefaultPoolAcquire = 30000
	DefaultPoolEvict   = 15000

	DefaultRetryMax = 5
)

// DefaultRetryMatch lists the connection-level failure kinds the downstream
// client is told to retry on.
func DefaultRetryMatch() []string {
	return []string{
		"connection refused",
		"host not found",
		"host unreachable",
		"invalid connection",
		"connection timed out",
	}
}

type Credentials struct {
	Database string
	Username string
	Password string
}

func (c Credentials) complete() bool {
	return c.Database != "" && c.Username != "" && c.Password != ""
}

type Pool struct {
	Max     int `json:"max" yaml:"max"`
	Min     int `json:"min" yaml:"min"`
	Idle    int `json:"idle" yaml:"idle"`
	Acquire int `json:"acquire" yaml:"acquire"`
	Evict   int `json:"evict" yaml:"evict"`
}

type Retry struct {
	Match []string `json:"match" yaml:"match"`
	Max   int      `json:"max" yaml:"max"`
}

type Host struct {
	Host     string `json:"host"`
	Port     int32  `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Replication struct {
	Write Host   `json:"write"`
	Read  []Host `json:"read"`
}

// Config is the declarative replication setup handed to the database client.
// It is pure data: nothing here opens connections or retries anything.
type Config struct {
	Dialect        string                 `json:"dialect"`
	Pool           Pool                   `json:"pool"`
	Replication    Replication            `json:"replication"`
	Retry          Retry                  `json:"retry"`
	Logging        bool                   `json:"logging"`
	DialectOptions map[string]interface{} `json:"dialectOptions,omitempty"`
}

type builder struct {
	dialect        string
	pool           Pool
	retry          Retry
	logging        bool
	dialectOptions map[string]interface{}
	globalReaders  bool
}

type Option func(*builder)

func WithPool(pool Pool) Option {
	return func(b *builder) {
		b.pool = pool
	}
}

func WithRetry(retry Retry) Option {
	return func(b *builder) {
		b.retry = retry
	}
}

func WithDialect(dialect string) Option {
	return func(b *builder) {
		b.dialect = dialect
	}
}

func WithLogging(enabled bool) Option {
	return func(b *builder) {
		b.logging = enabled
	}
}

func WithDialectOptions(options map[string]interface{}) Option {
	return func(b *builder) {
		b.dialectOptions = options
	}
}

// WithGlobalReaders includes global-role endpoints in the reader list. They
// are excluded by default.
func WithGlobalReaders() Option {
	return func(b *builder) {
		b.globalReaders = true
	}
}

func newBuilder() *builder {
	return &builder{
		dialect: DefaultDialect,
		pool: Pool{
			Max:     DefaultPoolMax,
			Min:     DefaultPoolMin,
			Idle:    DefaultPoolIdle,
			Acquire: DefaultPoolAcquire,
			Evict:   DefaultPoolEvict,
		},
		retry: Retry{
			Match: DefaultRetryMatch(),
			Max:   DefaultRetryMax,
		},
	}
}

// BuildConfig partitions endpoints into one writer and zero or more readers
// and assembles the client configuration. The first write-role endpoint wins;
// the call fails with ErrNoWriter when there is none.
func BuildConfig(endpoints []topology.Endpoint, credentials Credentials, opts ...Option) (*Config, error) {
	if !credentials.complete() {
		return nil, ErrMissingCredentials
	}

	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	var writer *topology.Endpoint
	var readers []topology.Endpoint
	for i, endpoint := range endpoints {
		switch endpoint.Role {
		case topology.RoleWrite:
			if writer == nil {
				writer = &endpoints[i]
			}
		case topology.RoleRead:
			readers = append(readers, endpoint)
		case topology.RoleGlobal:
			if b.globalReaders {
				readers = append(readers, endpoint)
			}
		}
	}
	if writer == nil {
		return nil, fmt.Errorf("building replication config: %w", ErrNoWriter)
	}

	readHosts := make([]Host, 0, len(readers))
	for _, reader := range readers {
		readHosts = append(readHosts, host(reader, credentials))
	}

	return &Config{
		Dialect: b.dialect,
		Pool:    b.pool,
		Replication: Replication{
			Write: host(*writer, credentials),
			Read:  readHosts,
		},
		Retry:          b.retry,
		Logging:        b.logging,
		DialectOptions: b.dialectOptions,
	}, nil
}

func host(endpoint topology.Endpoint, credentials Credentials) Host {
	return Host{
		Host:     endpoint.Endpoint,
		Port:     endpoint.Port,
		Database: credentials.Database,
		Username: credentials.Username,
		Password: credentials.Password,
	}
}
