package words

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
)

// DefaultTestSize is the number of words drawn for a practice test.
const DefaultTestSize = 10

// Slot is the persisted home of the store snapshot. Read returns (nil, nil)
// when nothing has been written yet; Write overwrites the slot wholesale.
type Slot interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// Store holds the session's word entries in insertion order. It is owned by a
// single session and is not safe for concurrent use.
type Store struct {
	entries []Entry
	slot    Slot
	rng     *rand.Rand
	log     *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings and ingestion events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRand replaces the shuffle source. Tests use it for reproducible draws.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) {
		if r != nil {
			s.rng = r
		}
	}
}

// Load reads the snapshot from slot and returns a store holding it. A missing,
// unreadable or malformed snapshot yields an empty store; the problem is logged
// and never returned.
func Load(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot: slot,
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "words")

	data, err := slot.Read()
	if err != nil {
		s.log.Warn("read snapshot failed, starting empty", slog.String("error", err.Error()))
		return s
	}
	if data == nil {
		return s
	}
	entries, err := Decode(data)
	if err != nil {
		s.log.Warn("snapshot unreadable, starting empty", slog.String("error", err.Error()))
		return s
	}
	s.entries = entries
	s.log.Debug("snapshot loaded", slog.Int("entries", len(entries)))
	return s
}

// Len returns the number of stored entries.
func (s *Store) Len() int { return len(s.entries) }

// Entries returns a copy of all entries in insertion order.
func (s *Store) Entries() []Entry {
	return slices.Clone(s.entries)
}

// ParseWeek converts user input into a week number. Blank input means the week
// is missing and yields nil without error.
func ParseWeek(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	w, err := strconv.Atoi(s)
	if err != nil {
		return nil, NewValidationError("week", MsgBadWeek)
	}
	return &w, nil
}

// SplitLines splits raw text on line breaks, trims every line and drops the
// blank ones. Invalid UTF-8 is replaced with U+FFFD so that a word reads back
// from the snapshot exactly as it was stored.
func SplitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if w := normalizeWord(line); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func normalizeWord(s string) string {
	return strings.TrimSpace(strings.ToValidUTF8(s, "\uFFFD"))
}

// AddWords appends one entry per non-blank line of rawText, all tagged with
// week, and persists the whole store. It returns the number of entries added.
func (s *Store) AddWords(week *int, rawText string) (int, error) {
	if week == nil || strings.TrimSpace(rawText) == "" {
		return 0, NewValidationError("", MsgMissingInput)
	}

	wordList := SplitLines(rawText)
	if len(wordList) == 0 {
		return 0, NewValidationError("text", MsgNoWords)
	}

	added := make([]Entry, len(wordList))
	for i, w := range wordList {
		added[i] = Entry{Word: w, Week: *week}
	}
	if err := s.appendAndPersist(added); err != nil {
		return 0, err
	}

	s.log.Info("words added", slog.Int("week", *week), slog.Int("count", len(added)))
	return len(added), nil
}

// Restore appends previously exported entries and persists the store. The
// batch is rejected as a whole if any entry has a blank word.
func (s *Store) Restore(entries []Entry) (int, error) {
	if len(entries) == 0 {
		return 0, NewValidationError("entries", MsgNoWords)
	}
	clean := make([]Entry, len(entries))
	for i, e := range entries {
		w := normalizeWord(e.Word)
		if w == "" {
			return 0, NewValidationError(fmt.Sprintf("entries[%d].word", i), "required")
		}
		clean[i] = Entry{Word: w, Week: e.Week}
	}
	if err := s.appendAndPersist(clean); err != nil {
		return 0, err
	}

	s.log.Info("entries restored", slog.Int("count", len(clean)))
	return len(clean), nil
}

// appendAndPersist writes the grown sequence first and only then adopts it, so
// a failed write leaves the in-memory store untouched.
func (s *Store) appendAndPersist(added []Entry) error {
	next := make([]Entry, 0, len(s.entries)+len(added))
	next = append(next, s.entries...)
	next = append(next, added...)

	data, err := Encode(next)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.slot.Write(data); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	s.entries = next
	return nil
}

// ListWeeks returns the distinct week numbers present, most recent first.
func (s *Store) ListWeeks() []int {
	seen := make(map[int]struct{}, len(s.entries))
	weeks := make([]int, 0)
	for _, e := range s.entries {
		if _, ok := seen[e.Week]; ok {
			continue
		}
		seen[e.Week] = struct{}{}
		weeks = append(weeks, e.Week)
	}
	slices.Sort(weeks)
	slices.Reverse(weeks)
	return weeks
}

// WordsForWeek returns the words assigned to week in insertion order.
func (s *Store) WordsForWeek(week int) []string {
	out := make([]string, 0)
	for _, e := range s.entries {
		if e.Week == week {
			out = append(out, e.Word)
		}
	}
	return out
}

// SampleTest draws count words uniformly at random from the whole store,
// regardless of week. Each call is an independent draw.
func (s *Store) SampleTest(count int) ([]string, error) {
	if count < 1 {
		return nil, NewValidationError("count", "must be at least 1")
	}
	if len(s.entries) < count {
		return nil, &InsufficientDataError{Need: count, Have: len(s.entries)}
	}

	shuffled := slices.Clone(s.entries)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	out := make([]string, count)
	for i := range out {
		out[i] = shuffled[i].Word
	}
	return out, nil
}
