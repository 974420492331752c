package model

// DateOverride is a per-date exception record layered onto the recurring
// schedule: Removed excludes recurring items for that one date, Added holds
// one-off special items that exist only inside this record.
//
// An override with empty Removed and empty Added is semantically equivalent
// to no override at all; readers must treat the two identically.
type DateOverride struct {
	Date    string        `json:"date"`
	Removed []int64       `json:"removed"`
	Added   []SpecialItem `json:"added"`
}

// SpecialItem is a one-off entry inside a single date's override. It is
// never part of the items collection and its checked state lives in the
// override record, not on any item.
type SpecialItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Checked bool   `json:"checked"`
}

// Empty reports whether the override carries no removals and no additions.
func (o *DateOverride) Empty() bool {
	return o == nil || (len(o.Removed) == 0 && len(o.Added) == 0)
}

// HasRemoved reports whether the item id is in the override's removed set.
func (o *DateOverride) HasRemoved(itemID int64) bool {
	if o == nil {
		return false
	}
	for _, id := range o.Removed {
		if id == itemID {
			return true
		}
	}
	return false
}
