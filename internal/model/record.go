package model

// ForgottenRecord logs which items were not packed on one date. There is at
// most one record per date: re-saving a date replaces the record wholesale,
// never merges. ItemIDs may reference items that have since been deleted;
// readers tolerate and skip unresolvable ids.
type ForgottenRecord struct {
	Date    string  `json:"date"`
	ItemIDs []int64 `json:"forgottenItems"`
}
