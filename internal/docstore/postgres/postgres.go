// Package postgres stores documents as JSONB rows, one table per
// collection. Tables are created by the embedded goose migrations when the
// store is opened.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vidly/internal/docstore"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.mongodb.org/mongo-driver/v2/bson"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxIdleLifeTime string
}

type Store struct {
	DB *sql.DB
}

var _ docstore.Store = (*Store)(nil)

func Open(ctx context.Context, cfg Config) (*Store, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	duration, err := time.ParseDuration(cfg.MaxIdleLifeTime)
	if err != nil {
		db.Close()
		return nil, err
	}
	db.SetConnMaxLifetime(duration)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{DB: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Collection(name string) docstore.Collection {
	return &collection{db: s.DB, table: pq.QuoteIdentifier(name)}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.DB.Close()
}

type collection struct {
	db    *sql.DB
	table string
}

func (c *collection) Find(ctx context.Context, sortField string, out any) error {
	query := fmt.Sprintf(`SELECT coalesce(jsonb_agg(doc ORDER BY doc ->> $1::text ASC NULLS FIRST, id ASC), '[]'::jsonb) FROM %s`, c.table)

	var raw []byte
	if err := c.db.QueryRowContext(ctx, query, sortField).Scan(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (c *collection) FindOne(ctx context.Context, field string, value string, out any) error {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE doc ->> $1::text = $2 LIMIT 1`, c.table)
	return c.scanDoc(c.db.QueryRowContext(ctx, query, field, value), out)
}

func (c *collection) FindByID(ctx context.Context, id bson.ObjectID, out any) error {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)
	return c.scanDoc(c.db.QueryRowContext(ctx, query, id.Hex()), out)
}

func (c *collection) Insert(ctx context.Context, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	var key struct {
		ID bson.ObjectID `json:"_id"`
	}
	if err := json.Unmarshal(raw, &key); err != nil {
		return err
	}
	if key.ID.IsZero() {
		return docstore.ErrInvalidID
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, c.table)
	_, err = c.db.ExecContext(ctx, query, key.ID.Hex(), string(raw))
	return translate(err)
}

func (c *collection) UpdateByID(ctx context.Context, id bson.ObjectID, set map[string]any, out any) error {
	patch, err := json.Marshal(set)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET doc = doc || $2::jsonb WHERE id = $1 RETURNING doc`, c.table)
	return c.scanDoc(c.db.QueryRowContext(ctx, query, id.Hex(), string(patch)), out)
}

func (c *collection) DeleteByID(ctx context.Context, id bson.ObjectID, out any) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 RETURNING doc`, c.table)
	return c.scanDoc(c.db.QueryRowContext(ctx, query, id.Hex()), out)
}

func (c *collection) scanDoc(row *sql.Row, out any) error {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		return translate(err)
	}
	return json.Unmarshal(raw, out)
}

func translate(err error) error {
	var pqErr *pq.Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return docstore.ErrNotFound
	case errors.As(err, &pqErr) && pqErr.Code == "23505":
		return docstore.ErrDuplicateKey
	default:
		return err
	}
}
