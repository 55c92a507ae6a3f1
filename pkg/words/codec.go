package words

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is a single spelling word tagged with the week it was assigned.
type Entry struct {
	Word string `json:"word"`
	Week int    `json:"week"`
}

// Encode serializes entries into the snapshot layout: a JSON array of
// {"word", "week"} objects. An empty store encodes as [] rather than null.
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// Decode parses a snapshot. Anything other than an array of entries with a
// non-blank word and an integer week is an error.
func Decode(data []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("snapshot is not a JSON array")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for i, msg := range raw {
		e, err := decodeEntry(msg)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// decodeEntry requires exactly the keys "word" and "week" (case-sensitive)
// holding a string and an integer. Other keys are ignored.
func decodeEntry(msg json.RawMessage) (Entry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(msg, &fields); err != nil {
		return Entry{}, err
	}
	rawWord, hasWord := fields["word"]
	rawWeek, hasWeek := fields["week"]
	if !hasWord || !hasWeek {
		return Entry{}, fmt.Errorf("word and week are required")
	}

	var word string
	if err := json.Unmarshal(rawWord, &word); err != nil {
		return Entry{}, fmt.Errorf("word must be a string")
	}
	word = strings.TrimSpace(word)
	if word == "" {
		return Entry{}, fmt.Errorf("word must be non-empty")
	}

	var weekVal any
	dec := json.NewDecoder(bytes.NewReader(rawWeek))
	dec.UseNumber()
	if err := dec.Decode(&weekVal); err != nil {
		return Entry{}, err
	}
	num, ok := weekVal.(json.Number)
	if !ok {
		return Entry{}, fmt.Errorf("week must be a number")
	}
	week, err := num.Int64()
	if err != nil {
		return Entry{}, fmt.Errorf("week %q is not an integer", num.String())
	}
	return Entry{Word: word, Week: int(week)}, nil
}
