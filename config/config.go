package config

import (
	"errors"
	"fmt"
	"hex/game"
	"hex/meta"
	"hex/store"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const envPrefix = "HEX_"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel       string       `yaml:"log_level"`
	Addr           string       `yaml:"addr"`
	Goroutines     int          `yaml:"goroutines"`
	Playouts       int          `yaml:"playouts"`
	MaxPlayouts    int          `yaml:"max_playouts"`
	MaxSimulations int          `yaml:"max_simulations"`
	Width          int          `yaml:"width"`
	Height         int          `yaml:"height"`
	Seed           uint64       `yaml:"seed"` // Zero seeds from the clock
	Games          int          `yaml:"games"`
	OutputDir      string       `yaml:"output_dir"`
	Store          store.Config `yaml:"store"`
}

func Default() Config {
	return Config{
		LogLevel:       meta.LOG_LEVEL,
		Addr:           meta.ADDR,
		Goroutines:     meta.GO_ROUTINES,
		Playouts:       meta.PLAYOUTS,
		MaxPlayouts:    meta.MAX_PLAYOUTS,
		MaxSimulations: meta.MAX_SIMULATIONS,
		Width:          meta.BOARD_SIZE,
		Height:         meta.BOARD_SIZE,
		Games:          meta.NUM_GAMES,
		OutputDir:      meta.OUTPUT_DIR,
		Store: store.Config{
			Mode:        store.ModeMemory,
			SQLitePath:  store.DefaultSQLitePath,
			PostgresDSN: store.DefaultPostgresDSN,
		},
	}
}

// Load reads defaults, then the YAML file at path if path is not empty, then HEX_*
// environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(envPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	setInt := func(name string, dst *int) error {
		v, ok := get(name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, envPrefix, name, v)
		}
		*dst = n
		return nil
	}
	setString := func(name string, dst *string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	setString("LOG_LEVEL", &c.LogLevel)
	setString("ADDR", &c.Addr)
	setString("OUTPUT_DIR", &c.OutputDir)
	setString("STORE_MODE", &c.Store.Mode)
	setString("SQLITE_PATH", &c.Store.SQLitePath)
	setString("POSTGRES_DSN", &c.Store.PostgresDSN)
	for name, dst := range map[string]*int{
		"GOROUTINES":      &c.Goroutines,
		"PLAYOUTS":        &c.Playouts,
		"MAX_PLAYOUTS":    &c.MaxPlayouts,
		"MAX_SIMULATIONS": &c.MaxSimulations,
		"WIDTH":           &c.Width,
		"HEIGHT":          &c.Height,
		"GAMES":           &c.Games,
	} {
		if err := setInt(name, dst); err != nil {
			return err
		}
	}
	if v, ok := get("SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED=%q", ErrInvalidConfig, envPrefix, v)
		}
		c.Seed = seed
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Goroutines <= 0 {
		return fmt.Errorf("%w: goroutines must be positive, got %d", ErrInvalidConfig, c.Goroutines)
	}
	if c.Playouts <= 0 {
		return fmt.Errorf("%w: playouts must be positive, got %d", ErrInvalidConfig, c.Playouts)
	}
	if c.MaxPlayouts < c.Playouts {
		return fmt.Errorf("%w: max playouts %d below playouts %d", ErrInvalidConfig, c.MaxPlayouts, c.Playouts)
	}
	if c.MaxSimulations < c.MaxPlayouts {
		return fmt.Errorf("%w: max simulations %d below max playouts %d", ErrInvalidConfig, c.MaxSimulations, c.MaxPlayouts)
	}
	if c.Games <= 0 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, c.Games)
	}
	if c.Width < game.MinSize || c.Width > game.MaxSize || c.Height < game.MinSize || c.Height > game.MaxSize {
		return fmt.Errorf("%w: %w: %dx%d", ErrInvalidConfig, game.ErrInvalidDimension, c.Width, c.Height)
	}
	return nil
}

// Level returns the configured zerolog level. Validate has already checked it parses.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
