package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	do "github.com/samber/do/v2"
	"github.com/spf13/viper"
)

var Package = do.Package(
	do.Lazy[*Config](NewConfig),
)

// Config holds the application configuration.
type Config struct {
	BaseURL        string
	Token          string
	Groups         []string
	PollInterval   time.Duration
	HTTPAddress    string
	StorePath      string
	Locale         string
	RequestTimeout time.Duration
	FanOutLimit    int
	BatchSize      int
}

// NewConfig creates a new configuration (for DI).
func NewConfig(_ do.Injector) (*Config, error) {
	return New()
}

// New loads configuration from RD_* environment variables and an
// optional ~/.reviewdeck.yaml file. Environment takes precedence.
func New() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("RD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(".reviewdeck")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	v.SetDefault("base_url", "https://gitlab.com")
	v.SetDefault("http_address", ":8080")
	v.SetDefault("store_path", defaultStorePath())
	v.SetDefault("locale", "en")
	v.SetDefault("poll_interval", 5*time.Minute)
	v.SetDefault("request_timeout", 15*time.Second)
	v.SetDefault("fan_out_limit", 8)
	v.SetDefault("batch_size", 5)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		BaseURL:        v.GetString("base_url"),
		Token:          v.GetString("token"),
		Groups:         splitList(v.GetString("groups")),
		PollInterval:   v.GetDuration("poll_interval"),
		HTTPAddress:    v.GetString("http_address"),
		StorePath:      v.GetString("store_path"),
		Locale:         v.GetString("locale"),
		RequestTimeout: v.GetDuration("request_timeout"),
		FanOutLimit:    v.GetInt("fan_out_limit"),
		BatchSize:      v.GetInt("batch_size"),
	}

	if cfg.Token == "" {
		return nil, errors.New("RD_TOKEN environment variable is required")
	}
	if cfg.FanOutLimit < 1 {
		cfg.FanOutLimit = 1
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}

	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reviewdeck.db"
	}

	return filepath.Join(home, ".reviewdeck.db")
}
