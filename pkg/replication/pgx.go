package replication

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// WriterPoolConfig translates the declarative config into a pgxpool
// configuration for the single write host.
func (c *Config) WriterPoolConfig() (*pgxpool.Config, error) {
	return c.poolConfig(c.Replication.Write)
}

// ReaderPoolConfigs returns one pgxpool configuration per read host, in the
// order the hosts were classified.
func (c *Config) ReaderPoolConfigs() ([]*pgxpool.Config, error) {
	configs := make([]*pgxpool.Config, 0, len(c.Replication.Read))
	for _, host := range c.Replication.Read {
		cfg, err := c.poolConfig(host)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

func (c *Config) poolConfig(host Host) (*pgxpool.Config, error) {
	dsn := url.URL{
		Scheme: c.Dialect,
		User:   url.UserPassword(host.Username, host.Password),
		Host:   net.JoinHostPort(host.Host, strconv.Itoa(int(host.Port))),
		Path:   "/" + host.Database,
	}

	cfg, err := pgxpool.ParseConfig(dsn.String())
	if err != nil {
		return nil, fmt.Errorf("parsing pool config for %s: %w", host.Host, err)
	}

	cfg.MaxConns = int32(c.Pool.Max)
	cfg.MinConns = int32(c.Pool.Min)
	cfg.MaxConnIdleTime = millis(c.Pool.Idle)
	cfg.HealthCheckPeriod = millis(c.Pool.Evict)
	cfg.ConnConfig.ConnectTimeout = millis(c.Pool.Acquire)
	return cfg, nil
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
