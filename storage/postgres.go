package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/sky-flux/deck"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS exercises (
    id             BIGINT  PRIMARY KEY,
    position       INTEGER NOT NULL,
    title_en       TEXT    NOT NULL DEFAULT '',
    description_en TEXT    NOT NULL DEFAULT '',
    title_fr       TEXT    NOT NULL DEFAULT '',
    description_fr TEXT    NOT NULL DEFAULT '',
    hidden         BOOLEAN NOT NULL DEFAULT FALSE
)`

// PostgresStore keeps one row per record in the exercises table. The
// position column preserves collection order.
type PostgresStore struct {
	db *sqlx.DB
}

// OpenPostgresStore connects with dsn and creates the table if needed.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: connect postgres: %w", err)
	}
	store, err := NewPostgresStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresStore uses an existing connection and creates the table if
// needed. The store closes db in Close.
func NewPostgresStore(ctx context.Context, db *sqlx.DB) (*PostgresStore, error) {
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("storage: create schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Load(ctx context.Context) ([]deck.Record, error) {
	query := `
        SELECT id, title_en, description_en, title_fr, description_fr, hidden
        FROM exercises
        ORDER BY position ASC
    `
	records := []deck.Record{}
	if err := p.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("storage: select exercises: %w", err)
	}
	return records, nil
}

// Save replaces every row inside one transaction.
func (p *PostgresStore) Save(ctx context.Context, records []deck.Record) (err error) {
	if err := deck.Validate(records); err != nil {
		return err
	}

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM exercises`); err != nil {
		return fmt.Errorf("storage: clear exercises: %w", err)
	}

	query := `
        INSERT INTO exercises (id, position, title_en, description_en, title_fr, description_fr, hidden)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	for i, r := range records {
		_, err = tx.ExecContext(ctx, query,
			r.ID, i, r.TitleEN, r.DescriptionEN, r.TitleFR, r.DescriptionFR, r.Hidden)
		if err != nil {
			return fmt.Errorf("storage: insert exercise %d: %w", r.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit: %w", err)
	}
	return nil
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
