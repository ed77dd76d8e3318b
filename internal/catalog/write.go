package catalog

import (
	"context"
	"fmt"
)

// Entry is one recorded descriptor emission.
type Entry struct {
	ID            int64
	Name          string
	ContentHash   string
	Deterministic bool
	SnippetCount  int
	InstallText   string
	RemoveText    string
	CreatedAt     string
}

// Record inserts a descriptor emission into the catalog and returns its
// row ID. Repeated emissions of the same name are kept as separate rows so
// history shows drift over time.
func (c *Catalog) Record(ctx context.Context, e Entry) (int64, error) {
	res, err := c.db.ExecContext(ctx, `
		INSERT INTO descriptors
		(name, content_hash, deterministic, snippet_count, install_text, remove_text)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.Name,
		e.ContentHash,
		boolToInt(e.Deterministic),
		e.SnippetCount,
		e.InstallText,
		e.RemoveText,
	)
	if err != nil {
		return 0, fmt.Errorf("record descriptor: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record descriptor: %w", err)
	}
	return id, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
