package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ymori/wasuremono/internal/model"
)

// SaveRecord upserts the forgotten record for its date key, replacing any
// existing record for that date wholesale.
func SaveRecord(ctx context.Context, db *sql.DB, r *model.ForgottenRecord) error {
	itemIDs, err := encodeJSON(r.ItemIDs)
	if err != nil {
		return fmt.Errorf("encoding record item ids: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO forgotten_records (date, item_ids) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET item_ids = excluded.item_ids`,
		r.Date, itemIDs,
	)
	if err != nil {
		return fmt.Errorf("saving forgotten record: %w", err)
	}
	return nil
}

// GetRecord returns the forgotten record for a date key, or nil if none
// exists.
func GetRecord(ctx context.Context, db *sql.DB, date string) (*model.ForgottenRecord, error) {
	var itemIDs string
	err := db.QueryRowContext(ctx,
		`SELECT item_ids FROM forgotten_records WHERE date = ?`, date,
	).Scan(&itemIDs)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting forgotten record: %w", err)
	}

	r := &model.ForgottenRecord{Date: date}
	if err := decodeJSON(itemIDs, &r.ItemIDs); err != nil {
		return nil, fmt.Errorf("decoding record item ids: %w", err)
	}
	return r, nil
}

// ListRecords returns all forgotten records, newest date first.
func ListRecords(ctx context.Context, db *sql.DB) ([]model.ForgottenRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT date, item_ids FROM forgotten_records ORDER BY date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing forgotten records: %w", err)
	}
	defer rows.Close()

	var records []model.ForgottenRecord
	for rows.Next() {
		var r model.ForgottenRecord
		var itemIDs string
		if err := rows.Scan(&r.Date, &itemIDs); err != nil {
			return nil, fmt.Errorf("scanning forgotten record: %w", err)
		}
		if err := decodeJSON(itemIDs, &r.ItemIDs); err != nil {
			return nil, fmt.Errorf("decoding record item ids: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteRecord removes the forgotten record for a date key.
func DeleteRecord(ctx context.Context, db *sql.DB, date string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM forgotten_records WHERE date = ?`, date)
	if err != nil {
		return fmt.Errorf("deleting forgotten record: %w", err)
	}
	return nil
}

// DeleteRecordsBefore removes every record dated strictly before the cutoff
// date key. YYYY-MM-DD keys sort lexicographically in date order.
func DeleteRecordsBefore(ctx context.Context, db *sql.DB, cutoff string) (int64, error) {
	result, err := db.ExecContext(ctx,
		`DELETE FROM forgotten_records WHERE date < ?`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("pruning forgotten records: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned records: %w", err)
	}
	return n, nil
}

// ClearRecords removes every forgotten record.
func ClearRecords(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `DELETE FROM forgotten_records`)
	if err != nil {
		return fmt.Errorf("clearing forgotten records: %w", err)
	}
	return nil
}
