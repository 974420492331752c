package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ymori/wasuremono/internal/model"
)

const itemColumns = `id, name, category, priority, code, memo, days, checked, photo_mime, created_at, updated_at`

// scanItem reads one item row. days is stored as a JSON array of day labels.
func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	item := &model.Item{}
	var code, memo, photoMime sql.NullString
	var days string
	err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Priority,
		&code, &memo, &days, &item.Checked, &photoMime,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Code = code.String
	item.Memo = memo.String
	item.PhotoMime = photoMime.String
	if err := decodeJSON(days, &item.Days); err != nil {
		return nil, fmt.Errorf("decoding item days: %w", err)
	}
	return item, nil
}

// CreateItem persists a new item and returns it with its assigned id.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	days, err := encodeJSON(item.Days)
	if err != nil {
		return nil, fmt.Errorf("encoding item days: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, category, priority, code, memo, days, checked)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.Category, item.Priority, item.Code, item.Memo, days, item.Checked,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by id, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// GetItemByCode returns the item with the given barcode, or nil if no item
// carries it.
func GetItemByCode(ctx context.Context, db *sql.DB, code string) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE code = ?`, code,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item by code: %w", err)
	}
	return item, nil
}

// ListItems returns all items, oldest first.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem updates all editable fields of an item.
func UpdateItem(ctx context.Context, db *sql.DB, item *model.Item) error {
	days, err := encodeJSON(item.Days)
	if err != nil {
		return fmt.Errorf("encoding item days: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`UPDATE items SET name = ?, category = ?, priority = ?, code = ?, memo = ?,
		        days = ?, checked = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		item.Name, item.Category, item.Priority, item.Code, item.Memo,
		days, item.Checked, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// SetItemChecked persists only the checked flag.
func SetItemChecked(ctx context.Context, db *sql.DB, id int64, checked bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET checked = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		checked, id,
	)
	if err != nil {
		return fmt.Errorf("setting item checked: %w", err)
	}
	return nil
}

// UncheckAllItems clears the checked flag on every item.
func UncheckAllItems(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET checked = 0, updated_at = CURRENT_TIMESTAMP WHERE checked = 1`,
	)
	if err != nil {
		return fmt.Errorf("unchecking all items: %w", err)
	}
	return nil
}

// DeleteItem removes an item. Overrides and forgotten records referencing
// its id are left in place; readers skip unresolvable ids.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// ClearItems removes every item.
func ClearItems(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `DELETE FROM items`)
	if err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}
	return nil
}

// SetItemPhoto stores an item's photo.
func SetItemPhoto(ctx context.Context, db *sql.DB, id int64, photo []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET photo = ?, photo_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}
	return nil
}

// GetItemPhoto returns an item's photo data and MIME type, or nil data when
// the item has no photo.
func GetItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}
