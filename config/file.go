package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of the optional SNAGBOT_CONFIG file.
// Pointer fields distinguish "absent" from zero values so the file can
// override any subset of the environment configuration.
type fileConfig struct {
	Server struct {
		Host *string `yaml:"host"`
		Port *int    `yaml:"port"`
		Mode *string `yaml:"mode"`
	} `yaml:"server"`
	Browser struct {
		Headless   *bool   `yaml:"headless"`
		MaxPages   *int    `yaml:"max_pages"`
		NoSandbox  *bool   `yaml:"no_sandbox"`
		BrowserBin *string `yaml:"browser_bin"`
		Proxy      *string `yaml:"proxy"`
	} `yaml:"browser"`
	Scraper struct {
		ChallengeDelay *string `yaml:"challenge_delay"`
		SettleDelay    *string `yaml:"settle_delay"`
		LoadingTimeout *string `yaml:"loading_timeout"`
		RequestTimeout *string `yaml:"request_timeout"`
	} `yaml:"scraper"`
	Webhook struct {
		URL    *string `yaml:"url"`
		Secret *string `yaml:"secret"`
	} `yaml:"webhook"`
}

// loadFile reads and parses a YAML config file.
func loadFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &fc, nil
}

// apply copies the file's set fields onto cfg.
func (fc *fileConfig) apply(cfg *Config) {
	if fc.Server.Host != nil {
		cfg.Server.Host = *fc.Server.Host
	}
	if fc.Server.Port != nil {
		cfg.Server.Port = *fc.Server.Port
	}
	if fc.Server.Mode != nil {
		cfg.Server.Mode = *fc.Server.Mode
	}
	if fc.Browser.Headless != nil {
		cfg.Browser.Headless = *fc.Browser.Headless
	}
	if fc.Browser.MaxPages != nil {
		cfg.Browser.MaxPages = *fc.Browser.MaxPages
	}
	if fc.Browser.NoSandbox != nil {
		cfg.Browser.NoSandbox = *fc.Browser.NoSandbox
	}
	if fc.Browser.BrowserBin != nil {
		cfg.Browser.BrowserBin = *fc.Browser.BrowserBin
	}
	if fc.Browser.Proxy != nil {
		cfg.Browser.Proxy = *fc.Browser.Proxy
	}
	applyDuration(&cfg.Scraper.ChallengeDelay, fc.Scraper.ChallengeDelay)
	applyDuration(&cfg.Scraper.SettleDelay, fc.Scraper.SettleDelay)
	applyDuration(&cfg.Scraper.LoadingTimeout, fc.Scraper.LoadingTimeout)
	applyDuration(&cfg.Scraper.RequestTimeout, fc.Scraper.RequestTimeout)
	if fc.Webhook.URL != nil {
		cfg.Webhook.URL = *fc.Webhook.URL
	}
	if fc.Webhook.Secret != nil {
		cfg.Webhook.Secret = *fc.Webhook.Secret
	}
}

// applyDuration parses a "30s"-style string into dst, ignoring absent
// or malformed values.
func applyDuration(dst *time.Duration, src *string) {
	if src == nil {
		return
	}
	if d, err := time.ParseDuration(*src); err == nil {
		*dst = d
	}
}
