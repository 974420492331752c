// Package checklist is the application core: read queries over the resolved
// schedule and every mutation the API exposes. All writes go through here so
// change events fire from exactly one place.
package checklist

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ymori/wasuremono/internal/events"
	"github.com/ymori/wasuremono/internal/model"
	"github.com/ymori/wasuremono/internal/schedule"
	"github.com/ymori/wasuremono/internal/store"
)

// Service wires the store to the resolver and broadcasts an event after
// every successful mutation. Events may be nil.
//
// Writes are last-write-wins: there is no version check, so two browser tabs
// toggling the same item race. Known gap, acceptable for a single user.
type Service struct {
	DB     *sql.DB
	Events *events.Hub
}

func New(db *sql.DB, hub *events.Hub) *Service {
	return &Service{DB: db, Events: hub}
}

// Stats summarizes one date's checklist progress.
type Stats struct {
	Date       string `json:"date"`
	Total      int    `json:"total"`
	Checked    int    `json:"checked"`
	Percentage int    `json:"percentage"`
}

// DetailedStats combines collection-wide totals with progress for the
// configured reference date.
type DetailedStats struct {
	ItemCount     int   `json:"itemCount"`
	CategoryCount int   `json:"categoryCount"`
	WithCode      int   `json:"withCode"`
	Reference     Stats `json:"reference"`
}

// ItemsForDate resolves the effective checklist for one date: all items plus
// the date's override, run through the resolver.
func (s *Service) ItemsForDate(ctx context.Context, t time.Time) ([]schedule.EffectiveItem, error) {
	items, err := store.ListItems(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	override, err := store.GetOverride(ctx, s.DB, schedule.DateKey(t))
	if err != nil {
		return nil, err
	}
	return schedule.Resolve(schedule.DayOfWeek(t), items, override), nil
}

func (s *Service) TodayItems(ctx context.Context) ([]schedule.EffectiveItem, error) {
	return s.ItemsForDate(ctx, time.Now())
}

func (s *Service) TomorrowItems(ctx context.Context) ([]schedule.EffectiveItem, error) {
	return s.ItemsForDate(ctx, time.Now().AddDate(0, 0, 1))
}

// StatsForDate counts the date's effective items and how many are checked.
// Percentage is 0 for an empty list, never a division by zero.
func (s *Service) StatsForDate(ctx context.Context, t time.Time) (*Stats, error) {
	effective, err := s.ItemsForDate(ctx, t)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Date: schedule.DateKey(t), Total: len(effective)}
	for _, e := range effective {
		if e.Checked {
			stats.Checked++
		}
	}
	if stats.Total > 0 {
		stats.Percentage = int(float64(stats.Checked)/float64(stats.Total)*100 + 0.5)
	}
	return stats, nil
}

// ReferenceDate returns the date the headline stats describe, per the
// reference_date setting (today unless set to tomorrow).
func (s *Service) ReferenceDate(ctx context.Context) (time.Time, error) {
	ref, err := store.GetSetting(ctx, s.DB, store.SettingReferenceDate, "today")
	if err != nil {
		return time.Time{}, err
	}
	now := time.Now()
	if ref == "tomorrow" {
		return now.AddDate(0, 0, 1), nil
	}
	return now, nil
}

// DetailedStats reports collection-wide totals plus progress for the
// reference date.
func (s *Service) DetailedStats(ctx context.Context) (*DetailedStats, error) {
	items, err := store.ListItems(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	stats := &DetailedStats{ItemCount: len(items)}
	categories := make(map[string]struct{})
	for _, item := range items {
		categories[item.Category] = struct{}{}
		if item.Code != "" {
			stats.WithCode++
		}
	}
	stats.CategoryCount = len(categories)

	ref, err := s.ReferenceDate(ctx)
	if err != nil {
		return nil, err
	}
	day, err := s.StatsForDate(ctx, ref)
	if err != nil {
		return nil, err
	}
	stats.Reference = *day
	return stats, nil
}

// LookupCode maps a scanned barcode to the item carrying it, or nil when no
// item does. An unknown code is not an error; the caller offers to create an
// item with the code pre-filled.
func (s *Service) LookupCode(ctx context.Context, code string) (*model.Item, error) {
	return store.GetItemByCode(ctx, s.DB, code)
}

// AddItem validates and persists a new recurring item.
func (s *Service) AddItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return nil, ErrEmptyName
	}
	if item.Category == "" {
		item.Category = model.DefaultCategory
	}
	if !model.ValidPriority(item.Priority) {
		item.Priority = model.PriorityNormal
	}
	if item.Code != "" {
		existing, err := store.GetItemByCode(ctx, s.DB, item.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateCode
		}
	}

	created, err := store.CreateItem(ctx, s.DB, item)
	if err != nil {
		return nil, err
	}
	s.Events.Broadcast(events.ItemsChanged)
	return created, nil
}

// UpdateItem validates and persists changes to an existing item.
func (s *Service) UpdateItem(ctx context.Context, item *model.Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return ErrEmptyName
	}
	if item.Code != "" {
		existing, err := store.GetItemByCode(ctx, s.DB, item.Code)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != item.ID {
			return ErrDuplicateCode
		}
	}

	if err := store.UpdateItem(ctx, s.DB, item); err != nil {
		return err
	}
	s.Events.Broadcast(events.ItemsChanged)
	return nil
}

// DeleteItem removes an item. Overrides and forgotten records that mention
// its id keep the dangling reference; readers skip it.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if err := store.DeleteItem(ctx, s.DB, id); err != nil {
		return err
	}
	s.Events.Broadcast(events.ItemsChanged)
	return nil
}

// ToggleItem sets a recurring item's checked flag. The flag is shared across
// every date the item recurs on; see model.Item.
func (s *Service) ToggleItem(ctx context.Context, id int64, checked bool) error {
	if err := store.SetItemChecked(ctx, s.DB, id, checked); err != nil {
		return err
	}
	s.Events.Broadcast(events.ItemsChanged)
	return nil
}

// ResetChecks unchecks every item, the start-of-day reset.
func (s *Service) ResetChecks(ctx context.Context) error {
	if err := store.UncheckAllItems(ctx, s.DB); err != nil {
		return err
	}
	s.Events.Broadcast(events.ItemsChanged)
	return nil
}

// Override returns a date's override, nil when none exists.
func (s *Service) Override(ctx context.Context, date string) (*model.DateOverride, error) {
	return store.GetOverride(ctx, s.DB, date)
}

// DeleteOverride drops a date's override record entirely.
func (s *Service) DeleteOverride(ctx context.Context, date string) error {
	if err := store.DeleteOverride(ctx, s.DB, date); err != nil {
		return err
	}
	s.Events.Broadcast(events.OverrideChanged)
	return nil
}

// SetRemoved adds or clears a recurring item's removal for one date.
// Removing an already-removed item is a no-op, not an error.
func (s *Service) SetRemoved(ctx context.Context, date string, itemID int64, removed bool) error {
	override, err := store.GetOverride(ctx, s.DB, date)
	if err != nil {
		return err
	}
	if override == nil {
		override = &model.DateOverride{Date: date}
	}

	if removed {
		if !override.HasRemoved(itemID) {
			override.Removed = append(override.Removed, itemID)
		}
	} else {
		kept := override.Removed[:0]
		for _, id := range override.Removed {
			if id != itemID {
				kept = append(kept, id)
			}
		}
		override.Removed = kept
	}

	// An emptied override is saved, not pruned; readers treat it like no
	// override.
	if err := store.SaveOverride(ctx, s.DB, override); err != nil {
		return err
	}
	s.Events.Broadcast(events.OverrideChanged)
	return nil
}

// AddSpecial adds a one-off item to one date's override and returns it with
// its assigned id. The special exists only inside that date.
func (s *Service) AddSpecial(ctx context.Context, date, name, code string) (*model.SpecialItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	override, err := store.GetOverride(ctx, s.DB, date)
	if err != nil {
		return nil, err
	}
	if override == nil {
		override = &model.DateOverride{Date: date}
	}
	for _, existing := range override.Added {
		if existing.Name == name {
			return nil, ErrDuplicateSpecial
		}
		if code != "" && existing.Code == code {
			return nil, ErrDuplicateCode
		}
	}

	special := model.SpecialItem{ID: uuid.NewString(), Name: name, Code: code}
	override.Added = append(override.Added, special)
	if err := store.SaveOverride(ctx, s.DB, override); err != nil {
		return nil, err
	}
	s.Events.Broadcast(events.OverrideChanged)
	return &special, nil
}

// RemoveSpecial deletes a special item from a date's override. An unknown id
// is a no-op.
func (s *Service) RemoveSpecial(ctx context.Context, date, specialID string) error {
	override, err := store.GetOverride(ctx, s.DB, date)
	if err != nil || override == nil {
		return err
	}

	kept := override.Added[:0]
	for _, special := range override.Added {
		if special.ID != specialID {
			kept = append(kept, special)
		}
	}
	override.Added = kept

	if err := store.SaveOverride(ctx, s.DB, override); err != nil {
		return err
	}
	s.Events.Broadcast(events.OverrideChanged)
	return nil
}

// ToggleSpecial sets a special item's checked flag. Only the override record
// is touched, never the items collection.
func (s *Service) ToggleSpecial(ctx context.Context, date, specialID string, checked bool) error {
	override, err := store.GetOverride(ctx, s.DB, date)
	if err != nil {
		return err
	}
	if override == nil {
		return fmt.Errorf("no override for %s", date)
	}

	found := false
	for i := range override.Added {
		if override.Added[i].ID == specialID {
			override.Added[i].Checked = checked
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no special item %s on %s", specialID, date)
	}

	if err := store.SaveOverride(ctx, s.DB, override); err != nil {
		return err
	}
	s.Events.Broadcast(events.OverrideChanged)
	return nil
}

// CheckAllForDate sets every effective item on a date to the given checked
// state. Recurring items are written one by one and specials in one override
// save; the operation is deliberately sequential and non-atomic. Individual
// failures are logged and skipped, then reported together as a
// PartialBulkError, so one bad write does not block the rest of the day's
// list.
func (s *Service) CheckAllForDate(ctx context.Context, t time.Time, state bool) error {
	effective, err := s.ItemsForDate(ctx, t)
	if err != nil {
		return err
	}

	var errs []error
	touchedSpecials := false
	for _, e := range effective {
		if e.Special {
			touchedSpecials = true
			continue
		}
		if err := store.SetItemChecked(ctx, s.DB, e.ItemID, state); err != nil {
			slog.Warn("Bulk check failed for item", "id", e.ItemID, "error", err)
			errs = append(errs, fmt.Errorf("item %d: %w", e.ItemID, err))
		}
	}

	if touchedSpecials {
		key := schedule.DateKey(t)
		override, err := store.GetOverride(ctx, s.DB, key)
		if err != nil {
			errs = append(errs, err)
		} else if override != nil {
			for i := range override.Added {
				override.Added[i].Checked = state
			}
			if err := store.SaveOverride(ctx, s.DB, override); err != nil {
				slog.Warn("Bulk check failed for specials", "date", key, "error", err)
				errs = append(errs, err)
			}
		}
	}

	s.Events.Broadcast(events.ItemsChanged)
	s.Events.Broadcast(events.OverrideChanged)

	if len(errs) > 0 {
		return &PartialBulkError{Failed: len(errs), Errs: errs}
	}
	return nil
}

// RecordForgotten saves which items were forgotten on a date, replacing any
// existing record for that date wholesale.
func (s *Service) RecordForgotten(ctx context.Context, date string, itemIDs []int64) error {
	record := &model.ForgottenRecord{Date: date, ItemIDs: itemIDs}
	if err := store.SaveRecord(ctx, s.DB, record); err != nil {
		return err
	}
	s.Events.Broadcast(events.RecordsChanged)
	return nil
}

// DeleteRecord removes one date's forgotten record.
func (s *Service) DeleteRecord(ctx context.Context, date string) error {
	if err := store.DeleteRecord(ctx, s.DB, date); err != nil {
		return err
	}
	s.Events.Broadcast(events.RecordsChanged)
	return nil
}

// DeleteRecordsBefore prunes forgotten records strictly before the cutoff
// date and returns how many were removed.
func (s *Service) DeleteRecordsBefore(ctx context.Context, cutoff string) (int64, error) {
	n, err := store.DeleteRecordsBefore(ctx, s.DB, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.Events.Broadcast(events.RecordsChanged)
	}
	return n, nil
}

// AddCategory validates and persists a new category.
func (s *Service) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	existing, err := store.GetCategoryByName(ctx, s.DB, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCategory
	}

	cat, err := store.CreateCategory(ctx, s.DB, name)
	if err != nil {
		return nil, err
	}
	s.Events.Broadcast(events.CategoriesChanged)
	return cat, nil
}

// DeleteCategory removes a category unless any item still uses it.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	cat, err := store.GetCategory(ctx, s.DB, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return nil
	}
	inUse, err := store.CategoryInUse(ctx, s.DB, cat.Name)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCategoryInUse
	}

	if err := store.DeleteCategory(ctx, s.DB, id); err != nil {
		return err
	}
	s.Events.Broadcast(events.CategoriesChanged)
	return nil
}

// SetReferenceDate updates which date the headline stats describe.
func (s *Service) SetReferenceDate(ctx context.Context, value string) error {
	if value != "today" && value != "tomorrow" {
		return ErrBadReferenceDate
	}
	if err := store.SetSetting(ctx, s.DB, store.SettingReferenceDate, value); err != nil {
		return err
	}
	s.Events.Broadcast(events.SettingsChanged)
	return nil
}
