package world

import (
	"testing"

	"github.com/simforge/server/internal/core/typegraph"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestWorld(t *testing.T) (*World, *typegraph.Graph) {
	t.Helper()
	g := typegraph.NewGraph("Actor")
	return New("test", ModeSimulation, zap.NewNop()), g
}

func TestSpawnAndValidity(t *testing.T) {
	w, g := newTestWorld(t)
	c, _ := g.Register("Thing", nil)

	a := w.Spawn(c, SpawnSpec{Name: "thing-1", Transform: Transform{X: 3, Y: 4}})
	require.True(t, a.Valid())
	require.Equal(t, "thing-1", a.Name())
	require.Equal(t, 3.0, a.Transform().X)
	require.Same(t, w, a.World())

	got, ok := w.Actor(a.ID())
	require.True(t, ok)
	require.Same(t, a, got)

	// name defaults to the class name
	b := w.Spawn(c, SpawnSpec{})
	require.Equal(t, "Thing", b.Name())
}

func TestDestroyIsDeferred(t *testing.T) {
	w, g := newTestWorld(t)
	c, _ := g.Register("Thing", nil)
	a := w.Spawn(c, SpawnSpec{})

	w.Destroy(a.ID())
	require.False(t, a.Valid(), "validity drops immediately on destroy request")
	require.True(t, a.BeingDestroyed())
	require.True(t, w.Alive(a.ID()), "slot not reclaimed until flush")

	_, ok := w.Actor(a.ID())
	require.True(t, ok, "pending actors still resolve until flush")

	w.FlushDestroyQueue()
	require.False(t, w.Alive(a.ID()))
	_, ok = w.Actor(a.ID())
	require.False(t, ok)
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	w, g := newTestWorld(t)
	c, _ := g.Register("Thing", nil)

	a := w.Spawn(c, SpawnSpec{})
	oldID := a.ID()
	w.Destroy(oldID)
	w.FlushDestroyQueue()

	b := w.Spawn(c, SpawnSpec{})
	require.Equal(t, oldID.Index(), b.ID().Index(), "slot is reused")
	require.NotEqual(t, oldID, b.ID(), "generation differs")
	require.False(t, w.Alive(oldID), "stale handle never resolves")
	require.True(t, w.Alive(b.ID()))
}

func TestActorsOfSpawnOrderAndSubclasses(t *testing.T) {
	w, g := newTestWorld(t)
	base, _ := g.Register("Base", nil, typegraph.Abstract())
	sub, _ := g.Register("Sub", base)
	other, _ := g.Register("Other", nil)

	a1 := w.Spawn(sub, SpawnSpec{Name: "first"})
	w.Spawn(other, SpawnSpec{})
	a3 := w.Spawn(sub, SpawnSpec{Name: "second"})

	got := w.ActorsOf(base)
	require.Equal(t, []*Actor{a1, a3}, got, "spawn order, subclasses included, other classes excluded")

	all := w.ActorsOf(g.Root())
	require.Len(t, all, 3)

	w.Destroy(a1.ID())
	require.Equal(t, []*Actor{a3}, w.ActorsOf(base), "pending-destruction actors excluded")
}

func TestConstructionHooks(t *testing.T) {
	w, g := newTestWorld(t)
	c, _ := g.Register("Thing", nil)

	var seen []string
	w.OnActorConstructed(func(a *Actor) { seen = append(seen, a.Name()) })

	w.Spawn(c, SpawnSpec{Name: "x"})
	w.Spawn(c, SpawnSpec{Name: "y"})
	require.Equal(t, []string{"x", "y"}, seen)
}

func TestSubsystemLifecycle(t *testing.T) {
	w, _ := newTestWorld(t)
	s := &recordingSubsystem{name: "rec"}

	require.NoError(t, w.AddSubsystem(s))
	require.Error(t, w.AddSubsystem(&recordingSubsystem{name: "rec"}), "duplicate name rejected")
	require.Same(t, s, w.Subsystem("rec"))
	require.Nil(t, w.Subsystem("missing"))

	require.False(t, w.Ready())
	w.InitSubsystems()
	require.True(t, w.Ready())
	require.Equal(t, 1, s.initCount)

	w.InitSubsystems()
	require.Equal(t, 1, s.initCount, "init fires once")
	require.Error(t, w.AddSubsystem(&recordingSubsystem{name: "late"}), "no registration after init")
}

type recordingSubsystem struct {
	name      string
	initCount int
}

func (s *recordingSubsystem) Name() string            { return s.name }
func (s *recordingSubsystem) PostInitialize(_ *World) { s.initCount++ }

func TestNextTickFiresOnce(t *testing.T) {
	w, _ := newTestWorld(t)
	fired := 0
	w.ScheduleNextTick(func() { fired++ })

	w.FlushNextTick()
	require.Equal(t, 1, fired)
	w.FlushNextTick()
	require.Equal(t, 1, fired, "continuations are one-shot")
}

func TestNextTickRescheduleRunsFollowingTick(t *testing.T) {
	w, _ := newTestWorld(t)
	var order []int
	w.ScheduleNextTick(func() {
		order = append(order, 1)
		w.ScheduleNextTick(func() { order = append(order, 2) })
	})

	w.FlushNextTick()
	require.Equal(t, []int{1}, order, "nested schedule waits for the next flush")
	w.FlushNextTick()
	require.Equal(t, []int{1, 2}, order)
}
