// Package config loads the dashboard configuration: a YAML file in the
// .commesse dot-directory, with environment variables taking precedence
// for deployment overrides and secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreSheets = "sheets"
	StoreSQLite = "sqlite"
)

// Config is the full configuration surface.
type Config struct {
	// Store selects the backing SheetStore: "sheets" (remote spreadsheet)
	// or "sqlite" (local file). Empty runs in-memory with seed data.
	Store string `yaml:"store"`

	SpreadsheetID   string `yaml:"spreadsheet_id"`
	CredentialsFile string `yaml:"credentials_file"`
	SQLitePath      string `yaml:"sqlite_path"`

	HTTPAddr     string        `yaml:"http_addr"`
	PollInterval time.Duration `yaml:"poll_interval"`

	GeminiModel  string `yaml:"gemini_model"`
	GeminiAPIKey string `yaml:"gemini_api_key"`

	Password      string `yaml:"password"`
	AdminPassword string `yaml:"admin_password"`

	// DivergenceThreshold is how many local commits may outrun the last
	// fetch before the diverged indicator lights up.
	DivergenceThreshold uint64 `yaml:"divergence_threshold"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		HTTPAddr:            ":8080",
		PollInterval:        30 * time.Second,
		GeminiModel:         "models/gemini-2.5-flash",
		Password:            "1409",
		AdminPassword:       "14091111",
		SQLitePath:          filepath.Join(".commesse", "commesse.db"),
		DivergenceThreshold: 20,
	}
}

// Load reads .commesse/config.yaml from dir, starting from defaults and
// finishing with environment overrides. A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, ".commesse", "config.yaml")
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes cfg as .commesse/config.yaml under dir.
func Save(dir string, cfg *Config) error {
	dotDir := filepath.Join(dir, ".commesse")
	if err := os.MkdirAll(dotDir, 0755); err != nil {
		return fmt.Errorf("failed to create .commesse dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dotDir, "config.yaml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setStr(&c.Store, "COMMESSE_STORE")
	setStr(&c.SpreadsheetID, "COMMESSE_SPREADSHEET_ID")
	setStr(&c.CredentialsFile, "COMMESSE_CREDENTIALS_FILE")
	setStr(&c.SQLitePath, "COMMESSE_SQLITE_PATH")
	setStr(&c.HTTPAddr, "COMMESSE_HTTP_ADDR")
	setStr(&c.GeminiModel, "COMMESSE_GEMINI_MODEL")
	setStr(&c.GeminiAPIKey, "COMMESSE_GEMINI_API_KEY")
	setStr(&c.Password, "COMMESSE_PASSWORD")
	setStr(&c.AdminPassword, "COMMESSE_ADMIN_PASSWORD")

	if v := os.Getenv("COMMESSE_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.PollInterval = d
		}
	}
	if v := os.Getenv("COMMESSE_DIVERGENCE_THRESHOLD"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.DivergenceThreshold = n
		}
	}
}

// Validate checks cross-field consistency for the selected store.
func (c *Config) Validate() error {
	switch c.Store {
	case "", StoreSQLite:
	case StoreSheets:
		if c.SpreadsheetID == "" {
			return fmt.Errorf("store %q requires spreadsheet_id", c.Store)
		}
		if c.CredentialsFile == "" {
			return fmt.Errorf("store %q requires credentials_file", c.Store)
		}
	default:
		return fmt.Errorf("unknown store kind %q", c.Store)
	}
	return nil
}
