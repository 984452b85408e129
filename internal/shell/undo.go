package shell

import (
	"errors"

	"github.com/Cyclone1070/msh/internal/history"
	"github.com/Cyclone1070/msh/internal/trash"
)

type copyUndo struct {
	Dest string `mapstructure:"dest"`
}

type moveUndo struct {
	OriginalPath string `mapstructure:"original_path"`
	NewPath      string `mapstructure:"new_path"`
}

type removeUndo struct {
	OriginalPath string `mapstructure:"original_path"`
	TrashPath    string `mapstructure:"trash_path"`
}

const nothingHappened = "Nothing happened"

// Undo reverses the most recent destructive command. A target that no longer
// exists makes the step a no-op rather than a failure.
func (e *Executor) Undo() *Result {
	rec, err := e.ledger.PopUndo()
	if errors.Is(err, history.ErrEmptyUndo) {
		e.logger.Log("undo", nil)
		return &Result{Output: []string{"Nothing to undo"}, Kind: KindEmptyUndo}
	}
	if err != nil {
		return e.fail("undo", err)
	}

	msg, err := e.applyUndo(rec)
	if err != nil {
		return e.fail("undo", err)
	}
	e.logger.Log("undo", nil)
	return okResult(msg)
}

func (e *Executor) applyUndo(rec history.UndoRecord) (string, error) {
	switch rec.Operation {
	case history.OpCopy:
		var p copyUndo
		if err := rec.Decode(&p); err != nil {
			return "", &UndoRecordError{Operation: string(rec.Operation), Cause: err}
		}
		if !e.fs.Exists(p.Dest) {
			return nothingHappened, nil
		}
		if err := e.fs.RemovePath(p.Dest); err != nil {
			return "", err
		}
		return "Undone: removed " + p.Dest, nil

	case history.OpMove:
		var p moveUndo
		if err := rec.Decode(&p); err != nil {
			return "", &UndoRecordError{Operation: string(rec.Operation), Cause: err}
		}
		if !e.fs.Exists(p.NewPath) {
			return nothingHappened, nil
		}
		if _, err := e.fs.Move(p.NewPath, p.OriginalPath); err != nil {
			return "", err
		}
		return "Undone: moved back to " + p.OriginalPath, nil

	case history.OpRemove, history.OpRemoveDir:
		var p removeUndo
		if err := rec.Decode(&p); err != nil {
			return "", &UndoRecordError{Operation: string(rec.Operation), Cause: err}
		}
		if err := e.trash.Restore(p.TrashPath, p.OriginalPath); err != nil {
			var missing *trash.EntryMissingError
			if errors.As(err, &missing) {
				return nothingHappened, nil
			}
			return "", err
		}
		return "Undone: restored " + p.OriginalPath, nil

	default:
		return "", &UndoRecordError{Operation: string(rec.Operation)}
	}
}
