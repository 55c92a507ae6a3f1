package words

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteBackup writes entries as an indented snapshot array.
func WriteBackup(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// ReadBackup reads a backup file. Both the bare snapshot array and an object
// wrapper {"words": [...]} are accepted.
func ReadBackup(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}

	// Try the object wrapper first { "words": [...] }
	var wrapped struct {
		Words json.RawMessage `json:"words"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Words) > 0 {
		entries, err := Decode(wrapped.Words)
		if err != nil {
			return nil, fmt.Errorf("parse backup words: %w", err)
		}
		return entries, nil
	}

	entries, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse backup as object or array: %w", err)
	}
	return entries, nil
}
