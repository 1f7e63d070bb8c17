package singleton

import "github.com/simforge/server/internal/core/world"

// Retirer removes a duplicate actor from its world. The strategy differs by
// runtime mode: a running simulation destroys directly, while an interactive
// editing session must route through the editor's selection+delete path so
// its bookkeeping stays consistent (see internal/editor).
type Retirer interface {
	Retire(a *world.Actor)
}

// DirectRetirer requests destruction through the world's own lifecycle API.
// Used outside interactive contexts, where no extra bookkeeping exists.
type DirectRetirer struct{}

func (DirectRetirer) Retire(a *world.Actor) {
	a.World().Destroy(a.ID())
}
