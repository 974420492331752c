// Package forgotten aggregates historical forgotten-item records into the
// frequency statistics behind the "what do I keep forgetting" views.
package forgotten

import (
	"log/slog"
	"sort"

	"github.com/ymori/wasuremono/internal/model"
	"github.com/ymori/wasuremono/internal/schedule"
)

// ItemCount is one entry in the by-item breakdown.
type ItemCount struct {
	ItemID   int64  `json:"itemId"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryCount groups forgotten counts under an item's current category.
type CategoryCount struct {
	Count int           `json:"count"`
	Items map[int64]int `json:"items"`
}

// Stats is the full aggregation over all forgotten records.
//
// TotalForgotten counts every recorded occurrence, including items whose id
// no longer resolves; those are dropped from ByItem and ByCategory without
// adjusting the total. The discrepancy is deliberate: history does not
// shrink because an item was deleted.
type Stats struct {
	TotalRecords   int                       `json:"totalRecords"`
	TotalForgotten int                       `json:"totalForgotten"`
	ByItem         map[int64]*ItemCount      `json:"byItem"`
	ByCategory     map[string]*CategoryCount `json:"byCategory"`
	ByDayOfWeek    map[string]int            `json:"byDayOfWeek"`
	ByDate         map[string]int            `json:"byDate"`
}

// ItemStats is the cheap variant for inline badges: occurrence counts per
// item id, resolvable or not, plus the grand total.
type ItemStats struct {
	Counts map[int64]int `json:"counts"`
	Total  int           `json:"total"`
}

// ComputeStats aggregates records against the current items collection.
// Categories are attributed by the item's category as it is now, not as it
// was when the record was written.
func ComputeStats(records []model.ForgottenRecord, items []model.Item) *Stats {
	byID := make(map[int64]*model.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	stats := &Stats{
		TotalRecords: len(records),
		ByItem:       make(map[int64]*ItemCount),
		ByCategory:   make(map[string]*CategoryCount),
		ByDayOfWeek:  make(map[string]int),
		ByDate:       make(map[string]int),
	}

	for _, record := range records {
		stats.TotalForgotten += len(record.ItemIDs)
		stats.ByDate[record.Date] += len(record.ItemIDs)

		if t, err := schedule.ParseDateKey(record.Date); err == nil {
			stats.ByDayOfWeek[schedule.DayOfWeek(t)] += len(record.ItemIDs)
		} else {
			slog.Warn("Skipping malformed record date", "date", record.Date, "error", err)
		}

		for _, id := range record.ItemIDs {
			item, ok := byID[id]
			if !ok {
				// Deleted item: counted in totals, absent from breakdowns.
				continue
			}

			entry := stats.ByItem[id]
			if entry == nil {
				entry = &ItemCount{ItemID: id, Name: item.Name, Category: item.Category}
				stats.ByItem[id] = entry
			}
			entry.Count++

			cat := stats.ByCategory[item.Category]
			if cat == nil {
				cat = &CategoryCount{Items: make(map[int64]int)}
				stats.ByCategory[item.Category] = cat
			}
			cat.Count++
			cat.Items[id]++
		}
	}
	return stats
}

// TopForgotten returns the n most-forgotten resolvable items, count
// descending. Ties keep ascending item-id order so repeated calls agree.
func (s *Stats) TopForgotten(n int) []ItemCount {
	ranked := make([]ItemCount, 0, len(s.ByItem))
	for _, entry := range s.ByItem {
		ranked = append(ranked, *entry)
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].Count != ranked[b].Count {
			return ranked[a].Count > ranked[b].Count
		}
		return ranked[a].ItemID < ranked[b].ItemID
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// ComputeItemStats counts occurrences per item id without resolving items,
// for callers that only need badge numbers.
func ComputeItemStats(records []model.ForgottenRecord) *ItemStats {
	stats := &ItemStats{Counts: make(map[int64]int)}
	for _, record := range records {
		for _, id := range record.ItemIDs {
			stats.Counts[id]++
			stats.Total++
		}
	}
	return stats
}
