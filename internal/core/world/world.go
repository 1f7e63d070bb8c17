package world

import (
	"github.com/simforge/server/internal/core/typegraph"
	"go.uber.org/zap"
)

// Mode distinguishes a running simulation from an interactive editing
// session. Some subsystems (duplicate retirement in particular) behave
// differently between the two.
type Mode int

const (
	ModeSimulation Mode = iota
	ModeEditor
)

func (m Mode) String() string {
	if m == ModeEditor {
		return "editor"
	}
	return "simulation"
}

// World is one isolated live simulation/editing context. It owns actor
// lifecycle (spawn, destroy queue), the per-world subsystem registry, the
// construction-hook list, and the one-shot next-tick continuation queue.
// All access happens on the single game-loop goroutine.
type World struct {
	name string
	mode Mode
	log  *zap.Logger

	pool   *actorPool
	actors map[ActorID]*Actor
	order  []ActorID // spawn order; drives deterministic enumeration

	subsystems []Subsystem
	byName     map[string]Subsystem
	ready      bool

	constructionHooks []func(*Actor)
	destroyQueue      []ActorID
	nextTick          []func()
}

func New(name string, mode Mode, log *zap.Logger) *World {
	return &World{
		name:   name,
		mode:   mode,
		log:    log,
		pool:   newActorPool(),
		actors: make(map[ActorID]*Actor, 256),
		byName: make(map[string]Subsystem, 4),
	}
}

func (w *World) Name() string { return w.name }
func (w *World) Mode() Mode   { return w.mode }

// Ready reports whether subsystem initialization has completed.
func (w *World) Ready() bool { return w.ready }

// OnActorConstructed registers a hook fired after every spawn, once the
// actor's transform is finalized. Hooks registered after actors already
// exist do not fire retroactively; subsystems catch up in PostInitialize.
func (w *World) OnActorConstructed(hook func(*Actor)) {
	w.constructionHooks = append(w.constructionHooks, hook)
}

// SpawnSpec carries the optional parts of a spawn request.
type SpawnSpec struct {
	Name      string
	Transform Transform
	Transient bool
}

// Spawn creates a new actor of class and fires construction hooks. The spawn
// itself never fails; hooks may immediately request the actor's destruction,
// so callers should check Valid before holding on to the result.
func (w *World) Spawn(class *typegraph.Class, spec SpawnSpec) *Actor {
	id := w.pool.create()
	a := &Actor{
		id:        id,
		class:     class,
		name:      spec.Name,
		transform: spec.Transform,
		transient: spec.Transient,
		world:     w,
	}
	if a.name == "" {
		a.name = class.Name()
	}
	w.actors[id] = a
	w.order = append(w.order, id)
	for _, hook := range w.constructionHooks {
		hook(a)
	}
	return a
}

// Actor resolves a handle to the live actor, tolerating stale handles.
// Pending-destruction actors still resolve until the queue is flushed.
func (w *World) Actor(id ActorID) (*Actor, bool) {
	a, ok := w.actors[id]
	return a, ok
}

// Alive reports whether the handle refers to a slot that has not been
// reclaimed yet. Pending-destruction actors are still alive.
func (w *World) Alive(id ActorID) bool {
	return w.pool.alive(id)
}

// ActorsOf returns all live actors whose class is target or a descendant of
// target, in spawn order. Pending-destruction actors are excluded.
func (w *World) ActorsOf(target *typegraph.Class) []*Actor {
	var out []*Actor
	for _, id := range w.order {
		a, ok := w.actors[id]
		if !ok || a.destroying {
			continue
		}
		if a.class.IsA(target) {
			out = append(out, a)
		}
	}
	return out
}

// Destroy requests an actor's removal. The actor immediately stops being
// valid; the slot is reclaimed when the destroy queue is flushed at tick end.
func (w *World) Destroy(id ActorID) {
	a, ok := w.actors[id]
	if !ok || a.destroying {
		return
	}
	a.destroying = true
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue finalizes all queued destructions: removes the actors
// and bumps slot generations so stale handles stop resolving.
func (w *World) FlushDestroyQueue() {
	for _, id := range w.destroyQueue {
		delete(w.actors, id)
		w.pool.destroy(id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	if len(w.actors) < len(w.order)/2 {
		w.compactOrder()
	}
}

func (w *World) compactOrder() {
	kept := w.order[:0]
	for _, id := range w.order {
		if _, ok := w.actors[id]; ok {
			kept = append(kept, id)
		}
	}
	w.order = kept
}

// ScheduleNextTick queues a fire-once continuation for the next tick. There
// is no cancellation; if the world is torn down first the continuation is
// simply dropped.
func (w *World) ScheduleNextTick(fn func()) {
	w.nextTick = append(w.nextTick, fn)
}

// FlushNextTick runs and clears all queued continuations. Continuations
// scheduled while flushing run on the following tick.
func (w *World) FlushNextTick() {
	pending := w.nextTick
	w.nextTick = nil
	for _, fn := range pending {
		fn()
	}
}
