package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sky-flux/deck"
)

// FileStore keeps the collection in a single JSON or YAML file, chosen by
// the file extension. Writes go to a temporary file that is then renamed
// over the target.
type FileStore struct {
	path   string
	encode func([]deck.Record) ([]byte, error)
	decode func([]byte) ([]deck.Record, error)
}

// NewFileStore returns a store for path. An empty path resolves to
// DefaultPath. The file itself is created on the first Save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	store := &FileStore{path: path}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		store.encode, store.decode = encodeJSON, decodeJSON
	case ".yaml", ".yml":
		store.encode, store.decode = encodeYAML, decodeYAML
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	return store, nil
}

// DefaultPath is the collection file used when no path is configured:
// deck/exercises.json under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("storage: resolve default path: %w", err)
	}
	return filepath.Join(dir, "deck", "exercises.json"), nil
}

// Path returns the file the store reads and writes.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(ctx context.Context) ([]deck.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []deck.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", f.path, err)
	}
	return f.decode(data)
}

func (f *FileStore) Save(ctx context.Context, records []deck.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := f.encode(records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".deck-*")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("storage: replace %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
