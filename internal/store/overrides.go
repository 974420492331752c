package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ymori/wasuremono/internal/model"
)

// GetOverride returns the override for a date key, or nil if none exists.
// Callers must treat nil exactly like an override with empty removed/added.
func GetOverride(ctx context.Context, db *sql.DB, date string) (*model.DateOverride, error) {
	var removed, added string
	err := db.QueryRowContext(ctx,
		`SELECT removed, added FROM date_overrides WHERE date = ?`, date,
	).Scan(&removed, &added)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting override: %w", err)
	}

	o := &model.DateOverride{Date: date}
	if err := decodeJSON(removed, &o.Removed); err != nil {
		return nil, fmt.Errorf("decoding override removed: %w", err)
	}
	if err := decodeJSON(added, &o.Added); err != nil {
		return nil, fmt.Errorf("decoding override added: %w", err)
	}
	return o, nil
}

// SaveOverride upserts the override for its date key. An empty override is
// saved as-is, not pruned; readers already treat it like no override.
func SaveOverride(ctx context.Context, db *sql.DB, o *model.DateOverride) error {
	removed, err := encodeJSON(o.Removed)
	if err != nil {
		return fmt.Errorf("encoding override removed: %w", err)
	}
	added, err := encodeJSON(o.Added)
	if err != nil {
		return fmt.Errorf("encoding override added: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO date_overrides (date, removed, added) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
		     removed = excluded.removed,
		     added = excluded.added,
		     updated_at = CURRENT_TIMESTAMP`,
		o.Date, removed, added,
	)
	if err != nil {
		return fmt.Errorf("saving override: %w", err)
	}
	return nil
}

// DeleteOverride removes the override for a date key.
func DeleteOverride(ctx context.Context, db *sql.DB, date string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM date_overrides WHERE date = ?`, date)
	if err != nil {
		return fmt.Errorf("deleting override: %w", err)
	}
	return nil
}

// ListOverrides returns all overrides ordered by date key.
func ListOverrides(ctx context.Context, db *sql.DB) ([]model.DateOverride, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT date, removed, added FROM date_overrides ORDER BY date`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing overrides: %w", err)
	}
	defer rows.Close()

	var overrides []model.DateOverride
	for rows.Next() {
		var o model.DateOverride
		var removed, added string
		if err := rows.Scan(&o.Date, &removed, &added); err != nil {
			return nil, fmt.Errorf("scanning override: %w", err)
		}
		if err := decodeJSON(removed, &o.Removed); err != nil {
			return nil, fmt.Errorf("decoding override removed: %w", err)
		}
		if err := decodeJSON(added, &o.Added); err != nil {
			return nil, fmt.Errorf("decoding override added: %w", err)
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}
