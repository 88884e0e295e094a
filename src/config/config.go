package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BielosX/wombat/pokedex/src/pokeapi"
	"github.com/BielosX/wombat/pokedex/src/pokedex"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ModeWeb   = "web"
	ModeTUI   = "tui"
	ModeFetch = "fetch"
)

type Config struct {
	Mode                 string        `mapstructure:"mode"`
	Variant              string        `mapstructure:"variant"`
	Addr                 string        `mapstructure:"addr"`
	BasePath             string        `mapstructure:"base-path"`
	APIBaseURL           string        `mapstructure:"api-base-url"`
	FetchTimeout         time.Duration `mapstructure:"fetch-timeout"`
	SessionTTL           time.Duration `mapstructure:"session-ttl"`
	SessionSweepInterval time.Duration `mapstructure:"session-sweep-interval"`
	LogLevel             string        `mapstructure:"log-level"`
	LogDevelopment       bool          `mapstructure:"log-development"`
	BucketName           string        `mapstructure:"bucket-name"`
	AWSRegion            string        `mapstructure:"aws-region"`
}

// Load reads .env, then POKEDEX_* environment variables and the optional
// YAML file at configPath. A missing file is not an error.
func Load(configPath string) (Config, error) {
	var cfg Config
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("POKEDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", ModeWeb)
	v.SetDefault("variant", string(pokedex.VariantLike))
	v.SetDefault("addr", ":8080")
	v.SetDefault("base-path", "/")
	v.SetDefault("api-base-url", pokeapi.DefaultBaseUrl)
	v.SetDefault("fetch-timeout", time.Duration(0))
	v.SetDefault("session-ttl", 30*time.Minute)
	v.SetDefault("session-sweep-interval", time.Minute)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-development", false)
	v.SetDefault("bucket-name", "")
	v.SetDefault("aws-region", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
				return cfg, fmt.Errorf("reading config %s: %w", configPath, err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	// The lambda runtime selects the handler the same way the scraper does.
	if handler := os.Getenv("_HANDLER"); handler != "" {
		cfg.Mode = handler
	}
	if cfg.BucketName == "" {
		cfg.BucketName = os.Getenv("BUCKET_NAME")
	}
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = os.Getenv("AWS_REGION")
	}
	cfg.BasePath = normalizeBasePath(cfg.BasePath)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeWeb, ModeTUI, ModeFetch:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if _, err := pokedex.ParseVariant(c.Variant); err != nil {
		return err
	}
	if c.APIBaseURL == "" {
		return errors.New("api-base-url is required")
	}
	if c.FetchTimeout < 0 {
		return errors.New("fetch-timeout must not be negative")
	}
	if c.Mode == ModeWeb && c.SessionTTL > 0 && c.SessionSweepInterval <= 0 {
		return errors.New("session-sweep-interval must be positive when session-ttl is set")
	}
	return nil
}

func (c Config) PokedexVariant() pokedex.Variant {
	return pokedex.Variant(c.Variant)
}

func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return "/" + p + "/"
}
