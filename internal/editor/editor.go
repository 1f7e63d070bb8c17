package editor

import (
	"github.com/simforge/server/internal/core/world"
	"go.uber.org/zap"
)

// SubsystemName is the key the Editor registers under in each editor-mode world.
const SubsystemName = "editor"

// Notifier presents a modal user-facing notice. The daemon wires a
// zap-backed notifier; an actual editor frontend would show a dialog.
type Notifier interface {
	Notice(title, body string)
}

// LogNotifier writes notices to the structured log.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) Notice(title, body string) {
	n.Log.Info("editor notice", zap.String("title", title), zap.String("body", body))
}

// Editor is the per-world interactive editing subsystem: it owns the actor
// selection set and the interactive deletion path. Deleting through the
// editor (instead of destroying directly) keeps the editing session's
// bookkeeping intact; direct destruction would bypass it.
type Editor struct {
	world    *world.World
	log      *zap.Logger
	notifier Notifier

	selection  []world.ActorID
	sceneDirty bool
}

// Install creates an Editor for w and registers it as a world subsystem.
func Install(w *world.World, log *zap.Logger, notifier Notifier) (*Editor, error) {
	if notifier == nil {
		notifier = LogNotifier{Log: log}
	}
	e := &Editor{world: w, log: log, notifier: notifier}
	if err := w.AddSubsystem(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Editor) Name() string                  { return SubsystemName }
func (e *Editor) PostInitialize(_ *world.World) {}

// Of returns the world's editor subsystem, or nil for non-editor worlds.
func Of(w *world.World) *Editor {
	e, _ := w.Subsystem(SubsystemName).(*Editor)
	return e
}

// Notify shows a modal user notice through the configured notifier.
func (e *Editor) Notify(title, body string) {
	e.notifier.Notice(title, body)
}

// Select adds an actor to the selection set.
func (e *Editor) Select(id world.ActorID) {
	e.selection = append(e.selection, id)
}

// SelectNone clears the selection set.
func (e *Editor) SelectNone() {
	e.selection = e.selection[:0]
}

// Selection returns the currently selected actor handles. Entries may be
// stale if a selected actor was deleted; callers resolve through the world.
func (e *Editor) Selection() []world.ActorID {
	return e.selection
}

// Dirty reports whether the session has unsaved scene changes.
func (e *Editor) Dirty() bool { return e.sceneDirty }

// DeleteSelected removes every selected actor through the world lifecycle
// and marks the scene dirty. The deletion is not recorded in any undo
// history, and it does not clear the selection set itself — stale selection
// entries are the caller's problem (cleared on the next tick in the
// duplicate-retirement path).
func (e *Editor) DeleteSelected() int {
	deleted := 0
	for _, id := range e.selection {
		a, ok := e.world.Actor(id)
		if !ok || a.BeingDestroyed() {
			continue
		}
		e.world.Destroy(id)
		deleted++
	}
	if deleted > 0 {
		e.sceneDirty = true
	}
	return deleted
}
