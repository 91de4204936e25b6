// Package storage persists a deck's record collection.
//
// A Provider loads and saves the whole collection at once. Backends are
// selected by name through Open: an in-memory store, a JSON or YAML file, an
// embedded badger database, Redis, or PostgreSQL.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sky-flux/deck"
)

// Provider loads and saves a record collection.
//
// Load returns an empty, non-nil slice when nothing has been saved yet.
// Save replaces the stored collection; a Load after Save(x) returns x.
type Provider interface {
	Load(ctx context.Context) ([]deck.Record, error)
	Save(ctx context.Context, records []deck.Record) error
	Close() error
}

var (
	ErrUnknownBackend    = errors.New("storage: unknown backend")
	ErrUnsupportedFormat = errors.New("storage: unsupported file format")
	ErrCorrupt           = errors.New("storage: corrupt payload")
	ErrMissingConnection = errors.New("storage: missing connection settings")
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendBadger   = "badger"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Path is the file for BackendFile and the directory for BackendBadger.
	Path string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	PostgresDSN string
}

// Open returns the Provider named by opts.Backend.
func Open(ctx context.Context, opts Options, log *logrus.Logger) (Provider, error) {
	if log == nil {
		log = logrus.New()
	}
	log.WithField("backend", opts.Backend).Debug("opening storage")

	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(nil), nil
	case BackendFile:
		return NewFileStore(opts.Path)
	case BackendBadger:
		return OpenBadgerStore(BadgerConfig{Path: opts.Path, Logger: log})
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("%w: redis address", ErrMissingConnection)
		}
		return OpenRedisStore(ctx, RedisConfig{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Key:      opts.RedisKey,
		})
	case BackendPostgres:
		if opts.PostgresDSN == "" {
			return nil, fmt.Errorf("%w: postgres dsn", ErrMissingConnection)
		}
		return OpenPostgresStore(ctx, opts.PostgresDSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// LoadOrSeed returns the stored collection. An empty collection is replaced
// by defaults, which are saved back to p; a failed save is logged and the
// defaults are still returned.
//
// A failed load is logged and a copy of defaults is returned without saving,
// so a store that could not be read is never overwritten.
func LoadOrSeed(ctx context.Context, p Provider, defaults []deck.Record, log *logrus.Logger) []deck.Record {
	if log == nil {
		log = logrus.New()
	}

	seed := make([]deck.Record, len(defaults))
	copy(seed, defaults)

	records, err := p.Load(ctx)
	if err != nil {
		log.WithError(err).Warn("loading records failed, using defaults for this run")
		return seed
	}
	if len(records) > 0 {
		log.WithField("count", len(records)).Debug("records loaded")
		return records
	}

	if err := p.Save(ctx, seed); err != nil {
		log.WithError(err).Warn("saving default records failed")
	} else {
		log.WithField("count", len(seed)).Info("storage seeded with default records")
	}
	return seed
}

// Restore replaces the stored collection with defaults.
func Restore(ctx context.Context, p Provider, defaults []deck.Record) error {
	if err := p.Save(ctx, defaults); err != nil {
		return fmt.Errorf("restore defaults: %w", err)
	}
	return nil
}
