package event

import "github.com/simforge/server/internal/core/world"

// Singleton lifecycle events. Payloads carry world/class/actor identity as
// plain values so consumers (audit, metrics) never hold live object refs.

// Promoted fires when an actor becomes the canonical instance for its final
// singleton class. Replaced is true when a stale registry entry (an
// externally destroyed instance) was overwritten.
type Promoted struct {
	World    string
	Class    string
	Actor    world.ActorID
	Name     string
	Replaced bool
}

// Retired fires when a duplicate actor is removed from its world.
type Retired struct {
	World       string
	Class       string
	Actor       world.ActorID
	Name        string
	Interactive bool
}

// ResolutionFailed fires when a class hierarchy has no ancestor marked as a
// terminal singleton boundary. This is an authoring error.
type ResolutionFailed struct {
	World string
	Class string
	Actor world.ActorID
	Name  string
}
