// Package config loads deck settings from a YAML file, DECK_* environment
// variables and built-in defaults, in decreasing order of precedence after
// explicit overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/sky-flux/deck"
	"github.com/sky-flux/deck/storage"
)

// EnvPrefix is prepended to every environment override, e.g.
// DECK_STORAGE_BACKEND for storage.backend.
const EnvPrefix = "DECK"

var ErrInvalid = errors.New("config: invalid value")

// Config holds all deck settings.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Session SessionConfig `mapstructure:"session"`
}

// LogConfig selects the logrus level and formatter.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text | json
	File   string `mapstructure:"file"`   // "" → stderr
}

func (l LogConfig) Validate() error {
	if _, err := logrus.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
	}
	switch l.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalid, l.Format)
	}
	return nil
}

// StorageConfig selects the collection backend.
type StorageConfig struct {
	Backend  string         `mapstructure:"backend"`
	Path     string         `mapstructure:"path"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

func (s StorageConfig) Validate() error {
	switch s.Backend {
	case storage.BackendMemory, storage.BackendFile:
	case storage.BackendBadger:
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("%w: storage.path is required for the badger backend", ErrInvalid)
		}
	case storage.BackendRedis:
		if strings.TrimSpace(s.Redis.Addr) == "" {
			return fmt.Errorf("%w: storage.redis.addr is required for the redis backend", ErrInvalid)
		}
		if s.Redis.DB < 0 {
			return fmt.Errorf("%w: storage.redis.db cannot be negative", ErrInvalid)
		}
	case storage.BackendPostgres:
		if strings.TrimSpace(s.Postgres.DSN) == "" {
			return fmt.Errorf("%w: storage.postgres.dsn is required for the postgres backend", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: storage.backend %q", ErrInvalid, s.Backend)
	}
	return nil
}

// Options converts the section into storage.Open options.
func (s StorageConfig) Options() storage.Options {
	return storage.Options{
		Backend:       s.Backend,
		Path:          s.Path,
		RedisAddr:     s.Redis.Addr,
		RedisPassword: s.Redis.Password,
		RedisDB:       s.Redis.DB,
		RedisKey:      s.Redis.Key,
		PostgresDSN:   s.Postgres.DSN,
	}
}

// SessionConfig controls the study session.
type SessionConfig struct {
	Lang       string        `mapstructure:"language"`
	Seed       int64         `mapstructure:"seed"` // 0 → seeded from the clock
	ResetDelay time.Duration `mapstructure:"reset_delay"`
}

// Language returns the configured display language.
func (s SessionConfig) Language() (deck.Language, error) {
	return deck.ParseLanguage(s.Lang)
}

func (s SessionConfig) Validate() error {
	if _, err := s.Language(); err != nil {
		return fmt.Errorf("%w: session.language: %v", ErrInvalid, err)
	}
	if s.ResetDelay < 0 {
		return fmt.Errorf("%w: session.reset_delay cannot be negative", ErrInvalid)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return c.Session.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("storage.backend", storage.BackendFile)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.key", storage.DefaultRedisKey)
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("session.language", "en")
	v.SetDefault("session.seed", 0)
	v.SetDefault("session.reset_delay", 300*time.Millisecond)
}

// Load reads the config file at path, applies DECK_* environment overrides
// and defaults, and validates the result.
//
// With an empty path, deck.yaml is looked up in the working directory and
// then in the user config directory; finding none is not an error.
func Load(path string) (*Config, error) {
	return load(viper.New(), path)
}

// LoadWith is Load with a caller-supplied viper instance, so that command
// line flags bound to v take precedence.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	return load(v, path)
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	if path == "" {
		v.SetConfigName("deck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "deck"))
		}
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
