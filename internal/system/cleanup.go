package system

import (
	"time"

	coresys "github.com/simforge/server/internal/core/system"
	"github.com/simforge/server/internal/core/world"
)

// CleanupSystem flushes the deferred actor destruction queue at tick end.
// Phase 4 (Cleanup).
type CleanupSystem struct {
	world *world.World
}

func NewCleanupSystem(w *world.World) *CleanupSystem {
	return &CleanupSystem{world: w}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushDestroyQueue()
}
