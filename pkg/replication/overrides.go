package replication

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Overrides is the YAML knob file accepted by the CLI. Every field is
// optional; absent fields keep the builder defaults.
type Overrides struct {
	Dialect       string         `yaml:"dialect,omitempty"`
	Logging       *bool          `yaml:"logging,omitempty"`
	GlobalReaders *bool          `yaml:"includeGlobalReaders,omitempty"`
	Pool          *PoolOverride  `yaml:"pool,omitempty"`
	Retry         *RetryOverride `yaml:"retry,omitempty"`
}

type PoolOverride struct {
	Max     *int `yaml:"max,omitempty"`
	Min     *int `yaml:"min,omitempty"`
	Idle    *int `yaml:"idle,omitempty"`
	Acquire *int `yaml:"acquire,omitempty"`
	Evict   *int `yaml:"evict,omitempty"`
}

type RetryOverride struct {
	Match []string `yaml:"match,omitempty"`
	Max   *int     `yaml:"max,omitempty"`
}

func LoadOverrides(file string) (*Overrides, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading overrides file: %w", err)
	}

	o := &Overrides{}
	if err := yaml.Unmarshal(content, o); err != nil {
		return nil, fmt.Errorf("unmarshalling overrides file: %w", err)
	}
	return o, nil
}

// Options translates the override file into builder options.
func (o *Overrides) Options() []Option {
	var opts []Option

	if o.Dialect != "" {
		opts = append(opts, WithDialect(o.Dialect))
	}
	if o.Logging != nil {
		opts = append(opts, WithLogging(*o.Logging))
	}
	if o.GlobalReaders != nil && *o.GlobalReaders {
		opts = append(opts, WithGlobalReaders())
	}
	if o.Pool != nil {
		pool := Pool{
			Max:     DefaultPoolMax,
			Min:     DefaultPoolMin,
			Idle:    DefaultPoolIdle,
			Acquire: DefaultPoolAcquire,
			Evict:   DefaultPoolEvict,
		}
		if o.Pool.Max != nil {
			pool.Max = *o.Pool.Max
		}
		if o.Pool.Min != nil {
			pool.Min = *o.Pool.Min
		}
		if o.Pool.Idle != nil {
			pool.Idle = *o.Pool.Idle
		}
		if o.Pool.Acquire != nil {
			pool.Acquire = *o.Pool.Acquire
		}
		if o.Pool.Evict != nil {
			pool.Evict = *o.Pool.Evict
		}
		opts = append(opts, WithPool(pool))
	}
	if o.Retry != nil {
		retry := Retry{Match: DefaultRetryMatch(), Max: DefaultRetryMax}
		if len(o.Retry.Match) > 0 {
			retry.Match = o.Retry.Match
		}
		if o.Retry.Max != nil {
			retry.Max = *o.Retry.Max
		}
		opts = append(opts, WithRetry(retry))
	}

	return opts
}
