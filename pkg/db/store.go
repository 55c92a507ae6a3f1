package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultSlotName is the slot holding the word list snapshot.
const DefaultSlotName = "spellingWords"

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

func validName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("slot name must be non-empty")
	}
	return trimmed, nil
}

// GetSlot returns the named slot. found is false when the slot was never written.
func GetSlot(db DBExecutor, name string) (slot Slot, found bool, err error) {
	name, err = validName(name)
	if err != nil {
		return Slot{}, false, err
	}
	err = db.QueryRow(`SELECT name, payload, updated_at FROM slots WHERE name = ?`, name).
		Scan(&slot.Name, &slot.Payload, &slot.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, false, nil
	}
	if err != nil {
		return Slot{}, false, fmt.Errorf("get slot %s: %w", name, err)
	}
	return slot, true, nil
}

// PutSlot overwrites the named slot with payload, creating it if needed.
func PutSlot(db DBExecutor, name, payload string) error {
	name, err := validName(name)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO slots (name, payload, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
	  payload = excluded.payload,
	  updated_at = excluded.updated_at`, name, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put slot %s: %w", name, err)
	}
	return nil
}

// DeleteSlot removes the named slot. Deleting a missing slot is not an error.
func DeleteSlot(db DBExecutor, name string) error {
	name, err := validName(name)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM slots WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete slot %s: %w", name, err)
	}
	return nil
}

// ListSlots returns the names of all stored slots, most recently written first.
func ListSlots(db DBExecutor) ([]string, error) {
	rows, err := db.Query(`SELECT name FROM slots ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SlotStore binds one slot of a database to the words.Slot interface.
type SlotStore struct {
	db   DBExecutor
	name string
}

// NewSlot returns a SlotStore for the named slot.
func NewSlot(db DBExecutor, name string) *SlotStore {
	if strings.TrimSpace(name) == "" {
		name = DefaultSlotName
	}
	return &SlotStore{db: db, name: name}
}

// Read returns the slot payload, or nil when the slot was never written.
func (s *SlotStore) Read() ([]byte, error) {
	slot, found, err := GetSlot(s.db, s.name)
	if err != nil || !found {
		return nil, err
	}
	return []byte(slot.Payload), nil
}

// Write replaces the slot payload.
func (s *SlotStore) Write(data []byte) error {
	return PutSlot(s.db, s.name, string(data))
}
