package model

import "time"

// Item is a recurring packing-list entry. Days holds the day-of-week labels
// the item recurs on; an item with no days never appears in a date's
// recurring list (it can still be added to a single date via an override).
//
// Checked is a single flag shared across every day the item recurs on:
// checking an item on Monday leaves it checked when viewed on Wednesday
// until it is unchecked or reset. Stats and forgotten-record capture rely
// on this, so it must not be silently date-scoped.
type Item struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Priority  string    `json:"priority"`
	Code      string    `json:"code,omitempty"`
	Memo      string    `json:"memo,omitempty"`
	Days      []string  `json:"days"`
	Checked   bool      `json:"checked"`
	PhotoMime string    `json:"photo_mime,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item priorities, highest first.
const (
	PriorityMust      = "must"
	PriorityImportant = "important"
	PriorityNormal    = "normal"
)

// DefaultCategory is assigned when an item is created without one.
const DefaultCategory = "other"

// PriorityWeight returns the sort weight of a priority. Unknown priorities
// weigh the same as normal so malformed rows still sort deterministically.
func PriorityWeight(priority string) int {
	switch priority {
	case PriorityMust:
		return 3
	case PriorityImportant:
		return 2
	default:
		return 1
	}
}

// ValidPriority reports whether p is one of the three known priorities.
func ValidPriority(p string) bool {
	return p == PriorityMust || p == PriorityImportant || p == PriorityNormal
}

// RecursOn reports whether the item recurs on the given day-of-week label.
func (i *Item) RecursOn(day string) bool {
	for _, d := range i.Days {
		if d == day {
			return true
		}
	}
	return false
}
