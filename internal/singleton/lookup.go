package singleton

import (
	"github.com/simforge/server/internal/core/typegraph"
	"github.com/simforge/server/internal/core/world"
)

// Instance returns the canonical actor for class's resolved final singleton
// class within w, or nil when the world has no manager yet (still loading),
// no instance is registered, or the registered instance is no longer valid.
//
// A nil world is a caller contract violation and panics: silently returning
// nil there would mask a bug upstream.
func Instance(w *world.World, class *typegraph.Class) *world.Actor {
	if w == nil {
		panic("singleton: Instance called with nil world")
	}
	m, _ := w.Subsystem(SubsystemName).(*Manager)
	if m == nil || !m.ready {
		return nil
	}
	return m.Instance(class)
}
