package singleton

import (
	"github.com/simforge/server/internal/core/event"
	"github.com/simforge/server/internal/core/typegraph"
	"github.com/simforge/server/internal/core/world"
	"go.uber.org/zap"
)

// SubsystemName is the key the Manager registers under in each world.
const SubsystemName = "singleton"

// Manager is the per-world singleton registry. It maps each final singleton
// class to the handle of the currently canonical actor and retires duplicates
// as they are constructed.
//
// Handles in the registry are non-owning: actor lifetime belongs to the
// world, and an entry may go stale when an instance is destroyed by code
// outside this protocol. Stale entries are tolerated — the next spawn of the
// same resolved class is promoted in place of the dead one.
type Manager struct {
	graph   *typegraph.Graph
	log     *zap.Logger
	bus     *event.Bus
	retirer Retirer

	world     *world.World
	ready     bool
	instances map[*typegraph.Class]world.ActorID
}

// Install creates a Manager for w, registers it as a world subsystem, and
// hooks actor construction. The retirer decides how duplicates are removed;
// nil selects direct destruction (running-simulation behavior).
func Install(w *world.World, graph *typegraph.Graph, log *zap.Logger, bus *event.Bus, retirer Retirer) (*Manager, error) {
	if retirer == nil {
		retirer = DirectRetirer{}
	}
	m := &Manager{
		graph:     graph,
		log:       log,
		bus:       bus,
		retirer:   retirer,
		world:     w,
		instances: make(map[*typegraph.Class]world.ActorID, 8),
	}
	if err := w.AddSubsystem(m); err != nil {
		return nil, err
	}
	w.OnActorConstructed(m.Evaluate)
	return m, nil
}

func (m *Manager) Name() string { return SubsystemName }

// PostInitialize runs the deferred catch-up sweep: actors spawned while the
// world was still loading had their construction-time evaluation no-op
// because the registry was not ready yet. Re-evaluate every live singleton
// actor now, in the world's enumeration (spawn) order. First enumerated per
// bucket becomes canonical; the rest retire.
func (m *Manager) PostInitialize(w *world.World) {
	m.ready = true
	for _, a := range w.ActorsOf(m.graph.Root()) {
		m.Evaluate(a)
	}
}

// Evaluate decides whether a becomes the canonical instance for its final
// singleton class or retires as a duplicate. Invoked from the construction
// hook after every spawn, and once more per actor by the catch-up sweep.
// Idempotent for the already-canonical actor.
func (m *Manager) Evaluate(a *world.Actor) {
	// Skip throwaway actors and anything already on its way out. These are
	// expected states, not errors.
	if a == nil || !a.Valid() || a.BeingDestroyed() || a.Transient() {
		return
	}

	// Registry not ready yet (world still loading). Expected; the catch-up
	// sweep in PostInitialize re-fires this evaluation.
	if !m.ready {
		return
	}

	parent := FinalParentOf(a.Class())
	if parent == nil {
		// Authoring error: no ancestor opted in as a terminal boundary.
		// Without a bucket the whole mechanism is silently defeated, so be
		// loud about it, but do not take the host down.
		m.log.Error("singleton: class has no final parent, check IsFinalParent overrides",
			zap.String("world", m.world.Name()),
			zap.String("class", a.Class().Name()),
			zap.Uint64("actor", uint64(a.ID())),
			zap.String("name", a.Name()))
		event.Emit(m.bus, event.ResolutionFailed{
			World: m.world.Name(),
			Class: a.Class().Name(),
			Actor: a.ID(),
			Name:  a.Name(),
		})
		return
	}

	current, tracked := m.instances[parent]
	if tracked && current == a.ID() {
		return
	}

	// The canonical instance may have been destroyed by external code; that
	// is allowed. Promote this actor in its place.
	if !tracked || !m.currentValid(current) {
		m.instances[parent] = a.ID()
		m.log.Warn("singleton: actor is now the canonical instance; further spawns of this class in this world will be destroyed",
			zap.String("world", m.world.Name()),
			zap.String("class", parent.Name()),
			zap.Uint64("actor", uint64(a.ID())),
			zap.String("name", a.Name()))
		event.Emit(m.bus, event.Promoted{
			World:    m.world.Name(),
			Class:    parent.Name(),
			Actor:    a.ID(),
			Name:     a.Name(),
			Replaced: tracked,
		})
		return
	}

	// Genuine duplicate. Error severity: spawning a second instance means
	// the caller is doing something wrong, but the spawn itself must not
	// fail, so the duplicate is retired instead.
	m.log.Error("singleton: world already has an instance of this class, destroying duplicate",
		zap.String("world", m.world.Name()),
		zap.String("class", parent.Name()),
		zap.Uint64("actor", uint64(a.ID())),
		zap.String("name", a.Name()))
	event.Emit(m.bus, event.Retired{
		World:       m.world.Name(),
		Class:       parent.Name(),
		Actor:       a.ID(),
		Name:        a.Name(),
		Interactive: m.world.Mode() == world.ModeEditor,
	})
	m.retirer.Retire(a)
}

func (m *Manager) currentValid(id world.ActorID) bool {
	a, ok := m.world.Actor(id)
	return ok && a.Valid()
}

// Instance returns the canonical actor for class's final singleton class, or
// nil if none is registered or the registered one is no longer valid.
func (m *Manager) Instance(class *typegraph.Class) *world.Actor {
	parent := FinalParentOf(class)
	if parent == nil {
		return nil
	}
	id, ok := m.instances[parent]
	if !ok {
		return nil
	}
	a, ok := m.world.Actor(id)
	if !ok || !a.Valid() {
		return nil
	}
	return a
}
