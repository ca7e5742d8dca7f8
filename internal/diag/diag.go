// Package diag collects recoverable problems found while reading a
// specification. Notes never stop a run; they only explain which default
// was used instead.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Kind classifies a diagnostic note.
type Kind int

const (
	MalformedAttribute Kind = iota // a field was present but could not be parsed
	MissingEntity                  // an expected entity was absent
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case MalformedAttribute:
		return "malformed_attribute"
	case MissingEntity:
		return "missing_entity"
	default:
		return "unknown"
	}
}

// Sink receives diagnostic notes.
type Sink interface {
	Note(kind Kind, msg string, keyvals ...any)
}

// LogSink writes notes as warnings to a charmbracelet logger.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink wraps an existing logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// NewLogger creates the logger used across the preview.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// Note implements Sink.
func (s *LogSink) Note(kind Kind, msg string, keyvals ...any) {
	s.logger.Warn(msg, append([]any{"kind", kind.String()}, keyvals...)...)
}

type discard struct{}

func (discard) Note(Kind, string, ...any) {}

// Discard drops every note.
var Discard Sink = discard{}

// Entry is a recorded note.
type Entry struct {
	Kind    Kind
	Message string
	KeyVals []any
}

// String formats the entry on one line.
func (e Entry) String() string {
	return fmt.Sprintf("%s: %s %v", e.Kind, e.Message, e.KeyVals)
}

// Recorder keeps notes in memory and optionally forwards them.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	next    Sink
}

// NewRecorder creates a recorder that forwards to next (may be nil).
func NewRecorder(next Sink) *Recorder {
	return &Recorder{next: next}
}

// Note implements Sink.
func (r *Recorder) Note(kind Kind, msg string, keyvals ...any) {
	r.mu.Lock()
	r.entries = append(r.entries, Entry{Kind: kind, Message: msg, KeyVals: keyvals})
	r.mu.Unlock()
	if r.next != nil {
		r.next.Note(kind, msg, keyvals...)
	}
}

// Entries returns a copy of the recorded notes.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Count returns how many notes of the given kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
