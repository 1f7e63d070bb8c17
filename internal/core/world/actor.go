package world

import "github.com/simforge/server/internal/core/typegraph"

// ActorID encodes a 32-bit pool index in the lower bits and a 32-bit
// generation in the upper bits. The generation increments when the slot is
// reclaimed, so stale handles held by other systems simply stop resolving.
type ActorID uint64

func NewActorID(index uint32, generation uint32) ActorID {
	return ActorID(uint64(generation)<<32 | uint64(index))
}

func (id ActorID) Index() uint32      { return uint32(id) }
func (id ActorID) Generation() uint32 { return uint32(id >> 32) }
func (id ActorID) IsZero() bool       { return id == 0 }

// Transform is an actor's finalized placement within its world.
type Transform struct {
	X, Y    float64
	Heading float64
}

// Actor is one live object in a world. Identity is unique per spawn; the
// owning world controls the lifecycle.
type Actor struct {
	id         ActorID
	class      *typegraph.Class
	name       string
	transform  Transform
	transient  bool
	destroying bool
	world      *World
}

func (a *Actor) ID() ActorID               { return a.id }
func (a *Actor) Class() *typegraph.Class   { return a.class }
func (a *Actor) Name() string              { return a.name }
func (a *Actor) Transform() Transform      { return a.transform }
func (a *Actor) World() *World             { return a.world }

// Transient reports whether the actor is a throwaway representative (e.g. a
// placement preview) that no subsystem should track.
func (a *Actor) Transient() bool { return a.transient }

// BeingDestroyed reports whether destruction has been requested but the
// destroy queue has not been flushed yet.
func (a *Actor) BeingDestroyed() bool { return a.destroying }

// Valid reports whether the actor is live: spawned, not pending destruction,
// and its handle still current in the owning world.
func (a *Actor) Valid() bool {
	return a != nil && a.world != nil && !a.destroying && a.world.Alive(a.id)
}

// actorPool allocates actor slots with generational indices and a free list.
type actorPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func newActorPool() *actorPool {
	return &actorPool{
		generations: make([]uint32, 0, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

func (p *actorPool) create() ActorID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewActorID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return NewActorID(idx, p.generations[idx])
}

func (p *actorPool) alive(id ActorID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

func (p *actorPool) destroy(id ActorID) {
	idx := id.Index()
	if idx >= p.nextIndex {
		return
	}
	if p.generations[idx] != id.Generation() {
		return // already reclaimed (stale handle)
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}
