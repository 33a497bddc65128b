package collatzgo

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/collatzgo/internal/memo"
)

// Config is the complete configuration of a Solver. The zero value is not
// valid; start from DefaultConfig.
type Config struct {
	// Strategy selects the concurrency strategy.
	Strategy Strategy `yaml:"strategy"`
	// Workers is the wave size, worker count or pool size.
	Workers int `yaml:"workers"`
	// Memoize enables the memoization backend of the strategy.
	Memoize bool `yaml:"memoize"`
	// PartialCacheCapacity is the slot count of the shared partial cache
	// used by memoizing process strategies.
	PartialCacheCapacity int `yaml:"partial_cache_capacity"`

	// MemoryLimitBytes bounds the shared memory mapped per Solver. 0 means unlimited.
	MemoryLimitBytes int64 `yaml:"memory_limit_bytes"`
	// MaxWorkers bounds live workers across concurrent runs. 0 means unlimited.
	MaxWorkers int64 `yaml:"max_workers"`
	// SpawnsPerSecond limits worker process creation. 0 means unlimited.
	SpawnsPerSecond float64 `yaml:"spawns_per_second"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the logger built from a Config.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// DefaultConfig returns a thread pool sized to the machine, without
// memoization, logging at info level as text.
func DefaultConfig() Config {
	return Config{
		Strategy:             ThreadPool,
		Workers:              runtime.NumCPU(),
		PartialCacheCapacity: memo.DefaultPartialCapacity,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their DefaultConfig value; unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()

	return DecodeConfig(f)
}

// DecodeConfig reads a YAML configuration from r, like LoadConfig.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: failed to parse config: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	if !c.Strategy.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Strategy))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers))
	}
	if c.PartialCacheCapacity <= 0 {
		errs = append(errs, fmt.Errorf("partial_cache_capacity must be positive, got %d", c.PartialCacheCapacity))
	}
	if c.MemoryLimitBytes < 0 {
		errs = append(errs, fmt.Errorf("memory_limit_bytes must not be negative, got %d", c.MemoryLimitBytes))
	}
	if c.MaxWorkers < 0 {
		errs = append(errs, fmt.Errorf("max_workers must not be negative, got %d", c.MaxWorkers))
	}
	if c.SpawnsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("spawns_per_second must not be negative, got %g", c.SpawnsPerSecond))
	}
	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.Log.Format))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// NewLogger builds the logger described by l, writing to w.
func (l LogConfig) NewLogger(w io.Writer) (*Logger, error) {
	level, err := l.level()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if strings.EqualFold(l.Format, "json") {
		return NewJSONLogger(w, level), nil
	}
	return NewTextLogger(w, level), nil
}
