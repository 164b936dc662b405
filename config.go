package lfucache

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config controls a Cache. It is a plain struct: set the fields you care
// about and pass it to New, which calls Build to validate and normalize it.
type Config struct {
	// Capacity is the maximum number of entries. Must be positive.
	Capacity int `yaml:"capacity"`

	// TTL is the maximum age of an entry. Age is measured from insertion;
	// reads and overwrites do not refresh it. Must be positive.
	TTL time.Duration `yaml:"ttl"`

	// SweepInterval is the period of the background expiration sweep.
	// Zero means "same as TTL".
	SweepInterval time.Duration `yaml:"sweep_interval"`

	// ManualSweep keeps New from starting the background sweep. Call
	// Cache.StartExpiration or Cache.Sweep yourself.
	ManualSweep bool `yaml:"manual_sweep"`

	// FreeListSize bounds how many destroyed entries are kept for reuse.
	FreeListSize int `yaml:"free_list_size"`

	// Logger receives debug records for evictions and sweeps and error
	// records for failed sweeps. Defaults to a logger that discards.
	Logger *slog.Logger `yaml:"-"`

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time `yaml:"-"`
}

// NewConfig returns a Config with default values.
func NewConfig() Config {
	return Config{
		Capacity:     1000,
		TTL:          5 * time.Minute,
		FreeListSize: 64,
	}
}

// Build validates c and fills in defaults.
func (c Config) Build() (Config, error) {
	if c.Capacity <= 0 {
		return c, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfiguration, c.Capacity)
	}
	if c.TTL <= 0 {
		return c, fmt.Errorf("%w: ttl must be positive, got %s", ErrInvalidConfiguration, c.TTL)
	}
	if c.SweepInterval < 0 {
		return c, fmt.Errorf("%w: sweep interval must not be negative, got %s", ErrInvalidConfiguration, c.SweepInterval)
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = c.TTL
	}
	if c.FreeListSize < 0 {
		c.FreeListSize = 0
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	return c, nil
}

// LoadConfig reads a YAML file into a Config, starting from NewConfig.
// Durations are Go duration strings ("3s", "5m").
//
//	capacity: 4
//	ttl: 3s
//	sweep_interval: 500ms
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg.Build()
}
