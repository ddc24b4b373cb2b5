// Package config carries the runtime settings for the scrape and process
// stages as one explicit value, loaded from YAML with environment
// overrides for credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is passed by value into each component.
type Config struct {
	BaseURL  string
	Email    string
	Password string
	OutDir   string

	ScrollWait            time.Duration
	MaxScrolls            int
	ClickRetries          int
	PerParticipantTimeout time.Duration
	RenderPollInterval    time.Duration
	MaxEventDuration      time.Duration
}

// fileConfig mirrors the YAML schema. Timing knobs are plain seconds
// (fractional allowed) so the file stays readable.
type fileConfig struct {
	BaseURL  string `yaml:"base_url,omitempty"`
	Email    string `yaml:"email,omitempty"`
	Password string `yaml:"password,omitempty"`
	OutDir   string `yaml:"out_dir,omitempty"`

	ScrollWaitSeconds            float64 `yaml:"scroll_wait_seconds,omitempty"`
	MaxScrolls                   int     `yaml:"max_scrolls,omitempty"`
	ClickRetries                 int     `yaml:"click_retries,omitempty"`
	PerParticipantTimeoutSeconds float64 `yaml:"per_participant_timeout_seconds,omitempty"`
	RenderPollIntervalSeconds    float64 `yaml:"render_poll_interval_seconds,omitempty"`
	MaxEventDurationSeconds      float64 `yaml:"max_event_duration_seconds,omitempty"`
}

// Default returns the settings used when no file overrides them.
func Default() Config {
	return Config{
		BaseURL:               "https://www.flowagility.com",
		OutDir:                "./output",
		ScrollWait:            2 * time.Second,
		MaxScrolls:            18,
		ClickRetries:          3,
		PerParticipantTimeout: 10 * time.Second,
		RenderPollInterval:    250 * time.Millisecond,
		MaxEventDuration:      5 * time.Minute,
	}
}

// Load reads path over the defaults. An empty path skips the file; env
// vars FLOW_EMAIL, FLOW_PASS and FLOW_OUT_DIR win over both. ${VAR}
// references inside the YAML are expanded before parsing.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &fc); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
		applyFile(&cfg, fc)
	}

	if v := os.Getenv("FLOW_EMAIL"); v != "" {
		cfg.Email = v
	}
	if v := os.Getenv("FLOW_PASS"); v != "" {
		cfg.Password = v
	}
	if v := os.Getenv("FLOW_OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig) {
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Email != "" {
		cfg.Email = fc.Email
	}
	if fc.Password != "" {
		cfg.Password = fc.Password
	}
	if fc.OutDir != "" {
		cfg.OutDir = fc.OutDir
	}
	if fc.ScrollWaitSeconds > 0 {
		cfg.ScrollWait = seconds(fc.ScrollWaitSeconds)
	}
	if fc.MaxScrolls > 0 {
		cfg.MaxScrolls = fc.MaxScrolls
	}
	if fc.ClickRetries > 0 {
		cfg.ClickRetries = fc.ClickRetries
	}
	if fc.PerParticipantTimeoutSeconds > 0 {
		cfg.PerParticipantTimeout = seconds(fc.PerParticipantTimeoutSeconds)
	}
	if fc.RenderPollIntervalSeconds > 0 {
		cfg.RenderPollInterval = seconds(fc.RenderPollIntervalSeconds)
	}
	if fc.MaxEventDurationSeconds > 0 {
		cfg.MaxEventDuration = seconds(fc.MaxEventDurationSeconds)
	}
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
