package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultMaxUploadBytes = 5 * 1024 * 1024

type TelegramConfig struct {
	Enabled    bool   `yaml:"enabled"`
	BotToken   string `yaml:"bot_token"`
	ChatID     string `yaml:"chat_id"`
	APIBase    string `yaml:"api_base"`
	MinTargets int    `yaml:"min_targets"`
}

type DatabaseConfig struct {
	DSN           string `yaml:"dsn"`
	MigrationsDir string `yaml:"migrations_dir"`
}

type Config struct {
	Listen         string   `yaml:"listen"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	DemoLatencyMs  int      `yaml:"demo_latency_ms"`
	Debug          bool     `yaml:"debug"`

	FixturesPath string `yaml:"fixtures_path"`

	DBPath       string         `yaml:"db_path"`
	HistoryLimit int            `yaml:"history_limit"`
	Database     DatabaseConfig `yaml:"database"`

	Telegram TelegramConfig `yaml:"telegram"`
}

// LoadConfig reads the YAML file at path. A missing file is not an error when
// optional is set; defaults are returned instead.
func LoadConfig(path string, optional bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:5173"
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.DemoLatencyMs < 0 {
		c.DemoLatencyMs = 0
	}
	if c.DBPath == "" {
		c.DBPath = "data/assessments.db"
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = 50
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "./migrations"
	}
	if c.Telegram.APIBase == "" {
		c.Telegram.APIBase = "https://api.telegram.org"
	}
	if c.Telegram.MinTargets <= 0 {
		c.Telegram.MinTargets = 1
	}
}

func (c *Config) DemoLatency() time.Duration {
	return time.Duration(c.DemoLatencyMs) * time.Millisecond
}
