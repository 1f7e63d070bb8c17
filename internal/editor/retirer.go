package editor

import (
	"github.com/simforge/server/internal/core/world"
)

// Retirer removes duplicate singleton actors through the interactive
// editing path: show the user a notice, then select and delete the
// duplicate so the session's bookkeeping sees the removal.
//
// Known limitation, kept on purpose: this path is not transactionally safe.
// The deletion is not undo-aware, it marks the scene dirty even though no
// intended change happened, and side effects the duplicate caused before
// removal are not rolled back. No robust mechanism for fixing any of that
// has been identified.
type Retirer struct {
	Editor *Editor
}

func (r *Retirer) Retire(a *world.Actor) {
	w := a.World()

	// Tell the user what is happening before the actor disappears. Title
	// and body are per-class overridable.
	r.Editor.Notify(a.Class().NoticeTitle(), a.Class().NoticeBody())

	r.Editor.SelectNone()
	r.Editor.Select(a.ID())
	r.Editor.DeleteSelected()

	// The deleted actor lingers in the selection set (DeleteSelected does
	// not clear it). Clear on the next tick so no stale selection artifact
	// survives into further editing.
	r.Editor.log.Debug("editor: scheduling selection clear after duplicate removal")
	w.ScheduleNextTick(r.Editor.SelectNone)
}
