// Package history records executed commands and the per-session undo stack.
package history

import (
	"time"

	"github.com/google/uuid"
)

// Ledger is the ordered, persisted command history plus an in-memory LIFO undo stack.
// The shell runs one command at a time, so the ledger is not safe for concurrent use.
type Ledger struct {
	store   store
	entries []Entry
	undo    []UndoRecord
	now     func() time.Time
	newID   func() string
}

// NewLedger loads existing history from s. A missing or unparsable backing file is
// treated as an empty history, not an error.
func NewLedger(s store) *Ledger {
	l := &Ledger{
		store: s,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	if entries, err := s.Load(); err == nil {
		l.entries = entries
	}
	return l
}

// Record builds an entry stamped with the current time and a fresh ID and appends it.
func (l *Ledger) Record(command, commandType string, args map[string]any) error {
	return l.Append(Entry{
		ID:        l.newID(),
		Timestamp: l.now(),
		Command:   command,
		Type:      commandType,
		Args:      args,
	})
}

// Append adds entry to the sequence, then persists the entire sequence.
// The in-memory sequence keeps the entry even if persisting fails.
func (l *Ledger) Append(entry Entry) error {
	l.entries = append(l.entries, entry)
	return l.store.Save(l.entries)
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Recent returns a copy of the last n entries, oldest first.
func (l *Ledger) Recent(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	start := max(len(l.entries)-n, 0)
	out := make([]Entry, len(l.entries)-start)
	copy(out, l.entries[start:])
	return out
}

// PushUndo pushes a record onto the undo stack.
func (l *Ledger) PushUndo(op Operation, info map[string]any) {
	l.undo = append(l.undo, UndoRecord{
		Operation: op,
		Info:      info,
		Timestamp: l.now(),
	})
}

// PopUndo removes and returns the most recently pushed record.
// Returns ErrEmptyUndo when the stack is empty.
func (l *Ledger) PopUndo() (UndoRecord, error) {
	if len(l.undo) == 0 {
		return UndoRecord{}, ErrEmptyUndo
	}
	rec := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	return rec, nil
}

// UndoDepth returns the number of pending undo records.
func (l *Ledger) UndoDepth() int {
	return len(l.undo)
}
