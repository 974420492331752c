package schedule

import (
	"sort"

	"github.com/ymori/wasuremono/internal/model"
)

// EffectiveItem is one entry in a date's resolved checklist. Exactly one of
// ItemID (recurring) or SpecialID (one-off) is meaningful, discriminated by
// Special.
type EffectiveItem struct {
	ItemID    int64  `json:"item_id,omitempty"`
	SpecialID string `json:"special_id,omitempty"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	Priority  string `json:"priority,omitempty"`
	Code      string `json:"code,omitempty"`
	Memo      string `json:"memo,omitempty"`
	Checked   bool   `json:"checked"`
	Special   bool   `json:"special"`
}

// Resolve computes the effective checklist for one date: items recurring on
// the date's weekday, minus the override's removed set, plus the override's
// special items. A nil override behaves exactly like an empty one.
//
// Recurring items sort by priority weight descending. The sort must be
// stable because the comparator is not injective: equal priorities keep
// their input order. Specials follow all recurring items in their stored
// order. Input items are never mutated.
func Resolve(day string, items []model.Item, override *model.DateOverride) []EffectiveItem {
	var recurring []EffectiveItem
	for i := range items {
		item := &items[i]
		if !item.RecursOn(day) {
			continue
		}
		if override.HasRemoved(item.ID) {
			continue
		}
		recurring = append(recurring, EffectiveItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Category: item.Category,
			Priority: item.Priority,
			Code:     item.Code,
			Memo:     item.Memo,
			Checked:  item.Checked,
		})
	}

	sort.SliceStable(recurring, func(a, b int) bool {
		return model.PriorityWeight(recurring[a].Priority) > model.PriorityWeight(recurring[b].Priority)
	})

	if override == nil {
		return recurring
	}

	result := recurring
	for _, s := range override.Added {
		result = append(result, EffectiveItem{
			SpecialID: s.ID,
			Name:      s.Name,
			Code:      s.Code,
			Checked:   s.Checked,
			Special:   true,
		})
	}
	return result
}
