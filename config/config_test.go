package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Username != "anonymous" {
		t.Errorf("Expected username anonymous, got %q", cfg.Username)
	}
	if cfg.DBPath != "sisyphus.db" {
		t.Errorf("Expected db path sisyphus.db, got %q", cfg.DBPath)
	}
	if cfg.TickInterval != 16*time.Millisecond {
		t.Errorf("Expected tick 16ms, got %v", cfg.TickInterval)
	}
	if cfg.FeedAddr != "" || cfg.Muted || cfg.Debug || cfg.Seed != 0 {
		t.Errorf("Expected zero optional settings, got %+v", cfg)
	}
}

// TestLoadEnvThenFlags verifies flags override env and env overrides defaults
func TestLoadEnvThenFlags(t *testing.T) {
	t.Setenv("SISYPHUS_USERNAME", "camus")
	t.Setenv("SISYPHUS_SEED", "42")
	t.Setenv("SISYPHUS_MUTED", "true")
	t.Setenv("SISYPHUS_FEED_ADDR", "127.0.0.1:9000")

	cfg, err := Load("test", []string{"-seed", "7", "-tick", "50ms"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Username != "camus" {
		t.Errorf("Expected env username, got %q", cfg.Username)
	}
	if cfg.Seed != 7 {
		t.Errorf("Expected flag seed 7, got %d", cfg.Seed)
	}
	if cfg.TickInterval != 50*time.Millisecond {
		t.Errorf("Expected flag tick 50ms, got %v", cfg.TickInterval)
	}
	if !cfg.Muted {
		t.Error("Expected muted from env")
	}
	if cfg.FeedAddr != "127.0.0.1:9000" {
		t.Errorf("Expected env feed addr, got %q", cfg.FeedAddr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want error
		text string
	}{
		{name: "bad env", env: map[string]string{"SISYPHUS_SEED": "many"}, text: "parse env:"},
		{name: "bad flag", args: []string{"-nope"}, text: "parse flags:"},
		{name: "blank user", args: []string{"-user", "   "}, want: ErrEmptyUsername},
		{name: "zero tick", args: []string{"-tick", "0s"}, want: ErrTickInterval},
		{name: "color", args: []string{"-color", "mono"}, want: ErrColorMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("test", tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if tt.text != "" && !strings.Contains(err.Error(), tt.text) {
				t.Errorf("Expected %q prefix, got %v", tt.text, err)
			}
		})
	}
}
