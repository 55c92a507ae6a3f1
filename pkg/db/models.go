package db

import "time"

// Slot is a named payload, the SQLite counterpart of a browser storage key.
type Slot struct {
	Name      string
	Payload   string
	UpdatedAt time.Time
}
