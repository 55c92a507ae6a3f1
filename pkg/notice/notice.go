// Package notice turns operation outcomes into short user-facing messages.
// The word store never builds notices itself; callers map results here.
package notice

import (
	"errors"
	"fmt"
	"io"

	"github.com/japaniel/spelling/pkg/words"
)

// Kind classifies a notice.
type Kind string

const (
	KindSuccess          Kind = "success"
	KindValidationError  Kind = "validation_error"
	KindInsufficientData Kind = "insufficient_data"
	KindFailure          Kind = "failure"
)

// Notice is a transient message for the presentation layer.
type Notice struct {
	Kind    Kind
	Title   string
	Message string
}

// IsError reports whether the notice describes a failed operation.
func (n Notice) IsError() bool { return n.Kind != KindSuccess }

func (n Notice) String() string {
	if n.Message == "" {
		return n.Title
	}
	return n.Title + ": " + n.Message
}

// Added confirms an ingestion.
func Added(count, week int) Notice {
	return Notice{
		Kind:    KindSuccess,
		Title:   "Words added! 🎉",
		Message: fmt.Sprintf("Added %d %s to week %d.", count, plural(count, "word", "words"), week),
	}
}

// Restored confirms a backup import.
func Restored(count int) Notice {
	return Notice{
		Kind:    KindSuccess,
		Title:   "Words restored",
		Message: fmt.Sprintf("Restored %d %s from backup.", count, plural(count, "word", "words")),
	}
}

// TestReady confirms a practice test of count words.
func TestReady(count int) Notice {
	return Notice{
		Kind:    KindSuccess,
		Title:   "Test ready! ✨",
		Message: fmt.Sprintf("Here are %d random %s to practice.", count, plural(count, "word", "words")),
	}
}

// FromError maps an operation error to a notice.
func FromError(err error) Notice {
	var ve *words.ValidationError
	if errors.As(err, &ve) {
		switch ve.Message {
		case words.MsgNoWords:
			return Notice{Kind: KindValidationError, Title: "No words found", Message: "Please enter at least one word."}
		case words.MsgMissingInput:
			return Notice{Kind: KindValidationError, Title: "Oops!", Message: "Please enter a week number and some words."}
		default:
			return Notice{Kind: KindValidationError, Title: "Oops!", Message: ve.Error()}
		}
	}

	var ide *words.InsufficientDataError
	if errors.As(err, &ide) {
		return Notice{
			Kind:    KindInsufficientData,
			Title:   "Need more words",
			Message: fmt.Sprintf("You need at least %d words to generate a test.", ide.Need),
		}
	}

	return Notice{Kind: KindFailure, Title: "Something went wrong", Message: err.Error()}
}

// Render writes n as a single line.
func Render(w io.Writer, n Notice) error {
	_, err := fmt.Fprintln(w, n.String())
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
