package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sky-flux/deck"
	"github.com/sky-flux/deck/storage"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, storage.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, storage.DefaultRedisKey, cfg.Storage.Redis.Key)
	assert.Equal(t, 300*time.Millisecond, cfg.Session.ResetDelay)
	assert.Zero(t, cfg.Session.Seed)

	lang, err := cfg.Session.Language()
	require.NoError(t, err)
	assert.Equal(t, deck.English, lang)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
storage:
  backend: redis
  redis:
    addr: cache:6379
    db: 2
session:
  language: fr
  seed: 42
  reset_delay: 1s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, storage.BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "cache:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)
	assert.Equal(t, storage.DefaultRedisKey, cfg.Storage.Redis.Key, "unset keys keep their default")
	assert.Equal(t, int64(42), cfg.Session.Seed)
	assert.Equal(t, time.Second, cfg.Session.ResetDelay)

	lang, err := cfg.Session.Language()
	require.NoError(t, err)
	assert.Equal(t, deck.French, lang)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: file\n")
	t.Setenv("DECK_STORAGE_BACKEND", "memory")
	t.Setenv("DECK_SESSION_LANGUAGE", "fr")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, storage.BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "fr", cfg.Session.Lang)
}

func TestLoadWithFlagOverride(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")
	v := viper.New()
	v.Set("log.level", "error")

	cfg, err := LoadWith(v, path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"level", "log:\n  level: loud\n"},
		{"format", "log:\n  format: xml\n"},
		{"backend", "storage:\n  backend: floppy\n"},
		{"badger path", "storage:\n  backend: badger\n"},
		{"postgres dsn", "storage:\n  backend: postgres\n"},
		{"language", "session:\n  language: de\n"},
		{"delay", "session:\n  reset_delay: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestStorageOptions(t *testing.T) {
	s := StorageConfig{
		Backend:  storage.BackendRedis,
		Path:     "/tmp/x",
		Redis:    RedisConfig{Addr: "a:1", Password: "pw", DB: 3, Key: "k"},
		Postgres: PostgresConfig{DSN: "postgres://"},
	}
	assert.Equal(t, storage.Options{
		Backend:       storage.BackendRedis,
		Path:          "/tmp/x",
		RedisAddr:     "a:1",
		RedisPassword: "pw",
		RedisDB:       3,
		RedisKey:      "k",
		PostgresDSN:   "postgres://",
	}, s.Options())
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
