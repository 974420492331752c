package model

import "time"

// Category groups items for filtering and display. Items reference a
// category by name, not id, and the reference is deliberately not
// foreign-key enforced: a deleted category leaves items rendering with a
// fallback icon on the client.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
