// Package store persists the local mirror of server state in two SQLite
// databases: one for friends and friend requests, one for conversations,
// message logs, groups and group requests. Each collection is a keyed table
// holding the entity JSON-encoded in a data column; every write is a
// whole-row upsert.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func openDB(path string, migrations []string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	// A single writer keeps upserts serialized; SQLite is the only
	// transaction boundary the cache relies on.
	db.SetMaxOpenConns(1)

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return db, nil
}

func putJSON(ctx context.Context, db *sqlx.DB, query string, v any, keys ...any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	args := append(keys, data)
	_, err = db.ExecContext(ctx, query, args...)
	return err
}

func putJSONTx(ctx context.Context, tx *sqlx.Tx, query string, v any, keys ...any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	args := append(keys, data)
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

// getJSON loads one row into dest. The second return is false on a miss.
func getJSON(ctx context.Context, db *sqlx.DB, query string, dest any, keys ...any) (bool, error) {
	var data []byte
	err := db.GetContext(ctx, &data, query, keys...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode row: %w", err)
	}
	return true, nil
}

func allJSON[T any](ctx context.Context, db *sqlx.DB, query string, args ...any) ([]T, error) {
	var blobs [][]byte
	if err := db.SelectContext(ctx, &blobs, query, args...); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(blobs))
	for _, b := range blobs {
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// filterJSON scans a whole collection and keeps rows matching the predicate.
func filterJSON[T any](ctx context.Context, db *sqlx.DB, query string, keep func(T) bool) ([]T, error) {
	rows, err := allJSON[T](ctx, db, query)
	if err != nil {
		return nil, err
	}
	out := rows[:0]
	for _, v := range rows {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func clearTables(ctx context.Context, db *sqlx.DB, tables ...string) error {
	for _, t := range tables {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return err
		}
	}
	return nil
}
