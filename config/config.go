// Package config loads process settings from the environment, then command-line flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process-level configuration
// Simulation tunables live in sim.Config; this covers the outer shell only
type Config struct {
	Username     string        `env:"SISYPHUS_USERNAME"      envDefault:"anonymous"`
	DBPath       string        `env:"SISYPHUS_DB_PATH"       envDefault:"sisyphus.db"`
	TickInterval time.Duration `env:"SISYPHUS_TICK_INTERVAL" envDefault:"16ms"`
	FeedAddr     string        `env:"SISYPHUS_FEED_ADDR"`
	Muted        bool          `env:"SISYPHUS_MUTED"`
	Debug        bool          `env:"SISYPHUS_DEBUG"`
	Seed         int64         `env:"SISYPHUS_SEED"`
	ColorMode    string        `env:"SISYPHUS_COLOR"         envDefault:"auto"`
}

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrTickInterval  = errors.New("tick interval must be positive")
	ErrColorMode     = errors.New("color mode must be auto, truecolor or 256")
)

// Load reads the environment and applies flag overrides from args
// args excludes the program name
func Load(name string, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Username, "user", cfg.Username, "Name recorded on the leaderboard")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite file for progression and leaderboard; empty disables persistence")
	fs.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "Simulation tick interval")
	fs.StringVar(&cfg.FeedAddr, "feed", cfg.FeedAddr, "Listen address for the spectator websocket feed; empty disables it")
	fs.BoolVar(&cfg.Muted, "mute", cfg.Muted, "Start with audio muted")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Write logs to the logs directory")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed, 0 seeds from the clock")
	fs.StringVar(&cfg.ColorMode, "color", cfg.ColorMode, "Color mode: auto, truecolor, 256")
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("parse flags: %w", err)
	}

	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.DBPath = strings.TrimSpace(cfg.DBPath)
	cfg.FeedAddr = strings.TrimSpace(cfg.FeedAddr)
	return cfg, cfg.Validate()
}

// Validate checks values flags and env cannot constrain on their own
func (c Config) Validate() error {
	if c.Username == "" {
		return ErrEmptyUsername
	}
	if c.TickInterval <= 0 {
		return ErrTickInterval
	}
	switch c.ColorMode {
	case "auto", "truecolor", "256":
	default:
		return fmt.Errorf("%w: %q", ErrColorMode, c.ColorMode)
	}
	return nil
}
