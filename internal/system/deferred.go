package system

import (
	"time"

	coresys "github.com/simforge/server/internal/core/system"
	"github.com/simforge/server/internal/core/world"
)

// DeferredSystem runs the world's one-shot next-tick continuations (e.g. the
// editor selection clear scheduled after an interactive duplicate removal).
// Phase 2 (Deferred), after simulation logic but before cleanup, so
// continuations still see the actors they were scheduled against.
type DeferredSystem struct {
	world *world.World
}

func NewDeferredSystem(w *world.World) *DeferredSystem {
	return &DeferredSystem{world: w}
}

func (s *DeferredSystem) Phase() coresys.Phase { return coresys.PhaseDeferred }

func (s *DeferredSystem) Update(_ time.Duration) {
	s.world.FlushNextTick()
}
