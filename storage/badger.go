package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"github.com/sky-flux/deck"
)

var recordsKey = []byte("exercises")

type BadgerConfig struct {
	Path     string // database directory; ignored when InMemory is set
	InMemory bool
	Logger   *logrus.Logger
}

// BadgerStore keeps the collection as one JSON value in an embedded badger
// database.
type BadgerStore struct {
	db  *badger.DB
	log *logrus.Logger
}

func OpenBadgerStore(config BadgerConfig) (*BadgerStore, error) {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.Path == "" && !config.InMemory {
		return nil, fmt.Errorf("%w: badger path", ErrMissingConnection)
	}

	opts := badger.DefaultOptions(config.Path).
		WithLogger(config.Logger.WithField("component", "badger"))
	if config.InMemory {
		opts = opts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open badger at %q: %w", config.Path, err)
	}
	return &BadgerStore{db: db, log: config.Logger}, nil
}

func (b *BadgerStore) Load(ctx context.Context) ([]deck.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordsKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []deck.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: badger read: %w", err)
	}
	return decodeJSON(data)
}

func (b *BadgerStore) Save(ctx context.Context, records []deck.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeJSON(records)
	if err != nil {
		return err
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordsKey, data)
	})
	if err != nil {
		b.log.WithError(err).Error("badger write failed")
		return fmt.Errorf("storage: badger write: %w", err)
	}
	b.log.WithField("count", len(records)).Debug("records written to badger")
	return nil
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}
