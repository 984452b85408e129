package history

import (
	"time"

	"github.com/mitchellh/mapstructure"
)

// Entry is one executed command. Entries are immutable once appended.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Command   string         `json:"command"`
	Type      string         `json:"type"`
	Args      map[string]any `json:"args"`
}

// Operation names a reversible command.
type Operation string

const (
	OpCopy      Operation = "cp"
	OpMove      Operation = "mv"
	OpRemove    Operation = "rm"
	OpRemoveDir Operation = "rmdir"
)

// UndoRecord describes how to reverse one destructive command.
// Records live only in memory for the lifetime of the process.
type UndoRecord struct {
	Operation Operation
	Info      map[string]any
	Timestamp time.Time
}

// Decode copies the record's Info fields into out, a pointer to a struct whose
// fields carry `mapstructure` tags.
func (r UndoRecord) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: false,
		ErrorUnset:  true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(r.Info)
}
