package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sky-flux/deck"
)

func sampleRecords() []deck.Record {
	return []deck.Record{
		{ID: 3, TitleEN: "Roll Up", DescriptionEN: "Peel the spine off the mat.", TitleFR: "L'enroulement", DescriptionFR: "Dérouler la colonne."},
		{ID: 1, TitleEN: "The Hundred", DescriptionEN: "Pump the arms.", TitleFR: "La centaine", DescriptionFR: "Pomper les bras.", Hidden: true},
		{ID: 2, TitleEN: "Single Leg Circles", TitleFR: "Cercles d'une jambe"},
	}
}

func quietLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

// testProvider checks the Provider contract against a freshly opened,
// empty backend.
func testProvider(t *testing.T, p Provider) {
	t.Helper()
	ctx := context.Background()

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	want := sampleRecords()
	require.NoError(t, p.Save(ctx, want))
	got, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got, "Load after Save should return the saved collection in order")

	shorter := want[:1]
	require.NoError(t, p.Save(ctx, shorter))
	got, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, shorter, got, "Save should replace, not merge")

	dup := []deck.Record{{ID: 7}, {ID: 7}}
	err = p.Save(ctx, dup)
	assert.ErrorIs(t, err, deck.ErrDuplicateID)
	got, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, shorter, got, "a rejected Save must leave the collection untouched")
}

func TestMemoryStore(t *testing.T) {
	p := NewMemoryStore(nil)
	defer p.Close()
	testProvider(t, p)
}

func TestMemoryStoreCopies(t *testing.T) {
	initial := sampleRecords()
	p := NewMemoryStore(initial)
	initial[0].TitleEN = "changed"

	got, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Roll Up", got[0].TitleEN)

	got[1].TitleEN = "changed too"
	again, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "The Hundred", again[1].TitleEN)
}

func TestMemoryStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewMemoryStore(nil)
	_, err := p.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, p.Save(ctx, sampleRecords()), context.Canceled)
}

func TestFileStore(t *testing.T) {
	for _, name := range []string{"deck.json", "deck.yaml", "deck.yml"} {
		t.Run(name, func(t *testing.T) {
			p, err := NewFileStore(filepath.Join(t.TempDir(), "nested", name))
			require.NoError(t, err)
			testProvider(t, p)
		})
	}
}

func TestFileStoreUnsupportedFormat(t *testing.T) {
	_, err := NewFileStore(filepath.Join(t.TempDir(), "deck.toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	p, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = p.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	p, err := NewFileStore(filepath.Join(dir, "deck.json"))
	require.NoError(t, err)
	require.NoError(t, p.Save(context.Background(), sampleRecords()))
	require.NoError(t, p.Save(context.Background(), sampleRecords()[:2]))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "deck.json", entries[0].Name())
}

func TestBadgerStore(t *testing.T) {
	log, _ := quietLogger()
	p, err := OpenBadgerStore(BadgerConfig{InMemory: true, Logger: log})
	require.NoError(t, err)
	defer p.Close()
	testProvider(t, p)
}

func TestBadgerStoreOnDisk(t *testing.T) {
	dir := t.TempDir()
	log, _ := quietLogger()

	p, err := OpenBadgerStore(BadgerConfig{Path: dir, Logger: log})
	require.NoError(t, err)
	require.NoError(t, p.Save(context.Background(), sampleRecords()))
	require.NoError(t, p.Close())

	p, err = OpenBadgerStore(BadgerConfig{Path: dir, Logger: log})
	require.NoError(t, err)
	defer p.Close()
	got, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)
}

func TestBadgerStoreRequiresPath(t *testing.T) {
	_, err := OpenBadgerStore(BadgerConfig{})
	assert.ErrorIs(t, err, ErrMissingConnection)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	p, err := OpenRedisStore(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer p.Close()
	testProvider(t, p)

	assert.True(t, mr.Exists(DefaultRedisKey))
}

func TestRedisStoreCustomKeyAndCorrupt(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("custom", "[{"))

	p := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "custom")
	defer p.Close()

	_, err := p.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("DECK_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("DECK_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	p, err := OpenPostgresStore(ctx, dsn)
	require.NoError(t, err)
	defer p.Close()

	_, err = p.db.ExecContext(ctx, `DELETE FROM exercises`)
	require.NoError(t, err)
	testProvider(t, p)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	log, _ := quietLogger()

	p, err := Open(ctx, Options{Backend: BackendMemory}, log)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, p)

	p, err = Open(ctx, Options{Backend: BackendFile, Path: filepath.Join(t.TempDir(), "d.yaml")}, log)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, p)

	mr := miniredis.RunT(t)
	p, err = Open(ctx, Options{Backend: BackendRedis, RedisAddr: mr.Addr(), RedisKey: "k"}, log)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, p)
	require.NoError(t, p.Close())

	_, err = Open(ctx, Options{Backend: "floppy"}, log)
	assert.ErrorIs(t, err, ErrUnknownBackend)

	_, err = Open(ctx, Options{Backend: BackendRedis}, log)
	assert.ErrorIs(t, err, ErrMissingConnection)

	_, err = Open(ctx, Options{Backend: BackendPostgres}, log)
	assert.ErrorIs(t, err, ErrMissingConnection)
}

// failingProvider fails every call with err and counts Save calls.
type failingProvider struct {
	err   error
	saves int
}

func (f *failingProvider) Load(context.Context) ([]deck.Record, error) { return nil, f.err }
func (f *failingProvider) Save(context.Context, []deck.Record) error {
	f.saves++
	return f.err
}
func (f *failingProvider) Close() error { return nil }

func TestLoadOrSeed(t *testing.T) {
	ctx := context.Background()
	log, _ := quietLogger()
	defaults := sampleRecords()

	t.Run("empty store is seeded", func(t *testing.T) {
		p := NewMemoryStore(nil)
		got := LoadOrSeed(ctx, p, defaults, log)
		assert.Equal(t, defaults, got)

		stored, err := p.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, defaults, stored)
	})

	t.Run("existing records win", func(t *testing.T) {
		existing := []deck.Record{{ID: 42, TitleEN: "Teaser"}}
		p := NewMemoryStore(existing)
		assert.Equal(t, existing, LoadOrSeed(ctx, p, defaults, log))
	})

	t.Run("failed load falls back to defaults without saving", func(t *testing.T) {
		log, buf := quietLogger()
		p := &failingProvider{err: errors.New("disk on fire")}
		got := LoadOrSeed(ctx, p, defaults, log)
		assert.Equal(t, defaults, got)
		assert.Contains(t, buf.String(), "disk on fire")
		assert.Zero(t, p.saves)
	})

	t.Run("corrupt file is left untouched", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deck.json")
		corrupt := []byte(`[{"id": 42, "title_en": "Teas`)
		require.NoError(t, os.WriteFile(path, corrupt, 0o644))

		store, err := NewFileStore(path)
		require.NoError(t, err)
		got := LoadOrSeed(ctx, store, defaults, log)
		assert.Equal(t, defaults, got)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, corrupt, data)
	})

	t.Run("returned slice is independent of defaults", func(t *testing.T) {
		d := sampleRecords()
		got := LoadOrSeed(ctx, NewMemoryStore(nil), d, log)
		got[0].TitleEN = "changed"
		assert.Equal(t, "Roll Up", d[0].TitleEN)
	})
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryStore([]deck.Record{{ID: 99}})
	require.NoError(t, Restore(ctx, p, sampleRecords()))

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)

	boom := errors.New("read-only")
	assert.ErrorIs(t, Restore(ctx, &failingProvider{err: boom}, sampleRecords()), boom)
}
