package replication

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes and codes for connection-level failures.
var retrySQLStates = []string{
	"08",
	"53",
	"57P01",
	"57P02",
	"57P03",
	"58",
	"99",
	"F0",
	"XX",
}

// IsRetryable reports whether err is one of the connection-level failures the
// retry policy matches. Retrying itself is the downstream client's job; this
// is the classification it is configured with.
func (c *Config) IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		state := pgErr.SQLState()
		for _, retryState := range retrySQLStates {
			if strings.HasPrefix(state, retryState) {
				return true
			}
		}
	}

	message := strings.ToLower(err.Error())
	for _, match := range c.Retry.Match {
		if strings.Contains(message, strings.ToLower(match)) {
			return true
		}
	}
	return false
}
