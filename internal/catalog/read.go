package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no catalog entry matches a query.
var ErrNotFound = errors.New("catalog: descriptor not found")

// List returns recorded emissions, newest first.
// With name empty, entries for all descriptors are returned.
// Limit caps the result; zero or negative means no cap.
func (c *Catalog) List(ctx context.Context, name string, limit int) ([]Entry, error) {
	query := `
		SELECT id, name, content_hash, deterministic, snippet_count, install_text, remove_text, created_at
		FROM descriptors
	`
	var args []any
	if name != "" {
		query += " WHERE name = ?"
		args = append(args, name)
	}
	// Deterministic result order: creation time, then row id as tiebreaker.
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list descriptors: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list descriptors: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list descriptors: %w", err)
	}
	return entries, nil
}

// Latest returns the most recent emission recorded under name.
func (c *Catalog) Latest(ctx context.Context, name string) (Entry, error) {
	entries, err := c.List(ctx, name, 1)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrNotFound
	}
	return entries[0], nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var e Entry
	var deterministic int
	if err := rows.Scan(
		&e.ID,
		&e.Name,
		&e.ContentHash,
		&deterministic,
		&e.SnippetCount,
		&e.InstallText,
		&e.RemoveText,
		&e.CreatedAt,
	); err != nil {
		return Entry{}, err
	}
	e.Deterministic = deterministic != 0
	return e, nil
}
