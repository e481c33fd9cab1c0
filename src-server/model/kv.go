package model

import "github.com/uptrace/bun"

// Local persistence keys. Each key holds one JSON blob, mirroring the mobile
// client's four AsyncStorage entries.
const (
	KVKeyEvents     = "events"
	KVKeyCalendars  = "calendars"
	KVKeyCategories = "categories"
	KVKeyDarkMode   = "dark_mode"
)

type KVEntry struct {
	bun.BaseModel `bun:"table:kv_entries"`

	Key   string `bun:"key,pk,notnull"`
	Value string `bun:"value,notnull"`
}
