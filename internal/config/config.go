// Package config loads the tagcover run configuration in three layers:
//
//  1. built-in defaults (Default),
//  2. an optional YAML file,
//  3. TAGCOVER_* environment variables, e.g. TAGCOVER_SOLVE_MODE=min or
//     TAGCOVER_ENGINE_TIME_LIMIT=30s (section, then key).
//
// Command-line flags are applied on top by cmd/tagcover, which therefore
// loads with Layered and validates once after its overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/katalvlaran/tagcover/descriptor"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "TAGCOVER_"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete run configuration.
type Config struct {
	Log    LogConfig    `koanf:"log"`
	Solve  SolveConfig  `koanf:"solve"`
	Engine EngineConfig `koanf:"engine"`
	Output OutputConfig `koanf:"output"`
	Sweep  SweepConfig  `koanf:"sweep"`
}

// LogConfig selects level and format of the global logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled off"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// SolveConfig holds the mode parameters and the input layout.
type SolveConfig struct {
	Mode          string `koanf:"mode" validate:"required"`
	Budget        int    `koanf:"budget" validate:"gte=0"`
	Threshold     int    `koanf:"threshold" validate:"gte=0"`
	ClusterCap    int    `koanf:"cap" validate:"gte=0"`
	Clusters      int    `koanf:"clusters" validate:"gte=0"`
	IDColumn      string `koanf:"id_column"`
	ClusterColumn string `koanf:"cluster_column" validate:"required"`
}

// Engine names accepted by EngineConfig.Solver.
const (
	EngineBnB = "bnb"
	EngineSAT = "sat"
)

// EngineConfig selects and tunes the optimisation engine.
type EngineConfig struct {
	Solver     string        `koanf:"solver" validate:"oneof=bnb sat"`
	TimeLimit  time.Duration `koanf:"time_limit" validate:"gte=0"`
	MaxNodes   int64         `koanf:"max_nodes" validate:"gte=0"`
	Relaxation bool          `koanf:"relaxation"`
}

// OutputConfig controls reporting and side artifacts.
type OutputConfig struct {
	Format      string `koanf:"format" validate:"oneof=text json yaml"`
	NoColor     bool   `koanf:"no_color"`
	LPFile      string `koanf:"lp_file"`
	MetricsFile string `koanf:"metrics_file"`
}

// SweepConfig bounds the concurrency of the sweep command.
type SweepConfig struct {
	Parallel int `koanf:"parallel" validate:"gte=1,lte=256"`
}

// Default returns the built-in configuration: mode A with no budget,
// text output, no engine limits.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "console"},
		Solve:  SolveConfig{Mode: "max", IDColumn: "E", ClusterColumn: "C"},
		Engine: EngineConfig{Solver: EngineBnB},
		Output: OutputConfig{Format: "text"},
		Sweep:  SweepConfig{Parallel: 4},
	}
}

// Load layers defaults, the YAML file at path (skipped when path is "")
// and the environment, then validates the result.
func Load(path string) (*Config, error) {
	cfg, err := Layered(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Layered is Load without validation, for callers that apply further
// overrides first and then call Validate.
func Layered(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return cfg, nil
}

// envKey maps TAGCOVER_ENGINE_TIME_LIMIT to engine.time_limit.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}

	return section + "." + rest
}

var validate = validator.New()

// Validate runs the struct rules and the mode/parameter table.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Params(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Params converts the solve section to descriptor parameters.
func (c *Config) Params() (descriptor.Params, error) {
	mode, err := descriptor.ParseMode(c.Solve.Mode)
	if err != nil {
		return descriptor.Params{}, err
	}
	p := descriptor.Params{
		Mode:       mode,
		Budget:     c.Solve.Budget,
		Threshold:  c.Solve.Threshold,
		ClusterCap: c.Solve.ClusterCap,
	}

	return p, p.Validate()
}
