// Package backup implements the versioned export/import file format used to
// move data between devices.
package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ymori/wasuremono/internal/model"
	"github.com/ymori/wasuremono/internal/store"
)

// Summary reports what an import restored.
type Summary struct {
	Items      int `json:"items"`
	Categories int `json:"categories"`
	Records    int `json:"records"`
}

// Export snapshots the full database as a version-3 backup. Older versions
// exist only for import compatibility.
func Export(ctx context.Context, db *sql.DB) (*model.Backup, error) {
	items, err := store.ListItems(ctx, db)
	if err != nil {
		return nil, err
	}
	categories, err := store.ListCategories(ctx, db)
	if err != nil {
		return nil, err
	}
	records, err := store.ListRecords(ctx, db)
	if err != nil {
		return nil, err
	}

	return &model.Backup{
		Version:          model.BackupV3,
		Items:            items,
		Categories:       categories,
		ForgottenRecords: records,
		BackupAt:         time.Now(),
	}, nil
}

// Decode parses and validates a backup file.
func Decode(r io.Reader) (*model.Backup, error) {
	var b model.Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding backup: %w", err)
	}
	if b.Version < model.BackupV1 || b.Version > model.BackupV3 {
		return nil, fmt.Errorf("unsupported backup version %d", b.Version)
	}
	return &b, nil
}

// Import restores a backup, replacing each collection the backup's version
// carries and leaving the rest untouched. A v1 file replaces items only; v2
// also replaces categories; v3 also replaces forgotten records.
//
// Item ids from the file are discarded and reassigned on insert, and every
// item comes back unchecked: a restored list starts a fresh day.
func Import(ctx context.Context, db *sql.DB, b *model.Backup) (*Summary, error) {
	summary := &Summary{}

	if err := store.ClearItems(ctx, db); err != nil {
		return nil, err
	}
	for i := range b.Items {
		item := b.Items[i]
		item.ID = 0
		item.Checked = false
		if item.Category == "" {
			item.Category = model.DefaultCategory
		}
		if !model.ValidPriority(item.Priority) {
			item.Priority = model.PriorityNormal
		}
		if _, err := store.CreateItem(ctx, db, &item); err != nil {
			return summary, fmt.Errorf("restoring item %q: %w", item.Name, err)
		}
		summary.Items++
	}

	if b.Version >= model.BackupV2 {
		if err := store.ClearCategories(ctx, db); err != nil {
			return summary, err
		}
		for _, cat := range b.Categories {
			if _, err := store.CreateCategory(ctx, db, cat.Name); err != nil {
				return summary, fmt.Errorf("restoring category %q: %w", cat.Name, err)
			}
			summary.Categories++
		}
	}

	if b.Version >= model.BackupV3 {
		if err := store.ClearRecords(ctx, db); err != nil {
			return summary, err
		}
		for i := range b.ForgottenRecords {
			if err := store.SaveRecord(ctx, db, &b.ForgottenRecords[i]); err != nil {
				return summary, fmt.Errorf("restoring record %s: %w", b.ForgottenRecords[i].Date, err)
			}
			summary.Records++
		}
	}

	return summary, nil
}
