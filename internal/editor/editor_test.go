package editor

import (
	"testing"

	"github.com/simforge/server/internal/core/typegraph"
	"github.com/simforge/server/internal/core/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	titles []string
	bodies []string
}

func (n *recordingNotifier) Notice(title, body string) {
	n.titles = append(n.titles, title)
	n.bodies = append(n.bodies, body)
}

func TestSelectionSet(t *testing.T) {
	w := world.New("edit", world.ModeEditor, zap.NewNop())
	ed, err := Install(w, zap.NewNop(), nil)
	require.NoError(t, err)
	require.Same(t, ed, Of(w))

	g := typegraph.NewGraph("Actor")
	c, _ := g.Register("Prop", nil)
	a := w.Spawn(c, world.SpawnSpec{})
	b := w.Spawn(c, world.SpawnSpec{})

	ed.Select(a.ID())
	ed.Select(b.ID())
	require.Len(t, ed.Selection(), 2)

	ed.SelectNone()
	require.Empty(t, ed.Selection())
}

func TestDeleteSelected(t *testing.T) {
	w := world.New("edit", world.ModeEditor, zap.NewNop())
	ed, _ := Install(w, zap.NewNop(), nil)

	g := typegraph.NewGraph("Actor")
	c, _ := g.Register("Prop", nil)
	a := w.Spawn(c, world.SpawnSpec{})
	keep := w.Spawn(c, world.SpawnSpec{})

	require.False(t, ed.Dirty())
	ed.Select(a.ID())
	deleted := ed.DeleteSelected()
	require.Equal(t, 1, deleted)
	require.True(t, ed.Dirty(), "deletion touches the scene even when unintended")
	require.False(t, a.Valid())
	require.True(t, keep.Valid())

	// Selection is NOT cleared by the delete itself.
	require.Len(t, ed.Selection(), 1)

	// Deleting again is a no-op on the now-pending actor.
	require.Equal(t, 0, ed.DeleteSelected())
}

func TestOfNonEditorWorld(t *testing.T) {
	w := world.New("sim", world.ModeSimulation, zap.NewNop())
	require.Nil(t, Of(w))
}
