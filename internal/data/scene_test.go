package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simforge/server/internal/core/typegraph"
	"github.com/simforge/server/internal/core/world"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sceneYAML = `
actors:
  - class: WeatherController
    name: weather
    x: 10
    y: 20
  - class: Prop
    count: 3
  - class: GhostPreview
    transient: true
  - class: DoesNotExist
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sceneYAML), 0o644))
	return path
}

func TestLoadScene(t *testing.T) {
	scene, err := LoadScene(writeScene(t))
	require.NoError(t, err)
	require.Len(t, scene.Actors, 4)
	require.Equal(t, "WeatherController", scene.Actors[0].Class)
	require.Equal(t, 10.0, scene.Actors[0].X)
	require.Equal(t, 3, scene.Actors[1].Count)
	require.True(t, scene.Actors[2].Transient)
}

func TestLoadSceneMissingFile(t *testing.T) {
	_, err := LoadScene(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestPopulateSpawnOrder(t *testing.T) {
	g := typegraph.NewGraph("Actor")
	_, err := g.Register("WeatherController", nil)
	require.NoError(t, err)
	_, err = g.Register("Prop", nil)
	require.NoError(t, err)
	_, err = g.Register("GhostPreview", nil)
	require.NoError(t, err)

	scene, err := LoadScene(writeScene(t))
	require.NoError(t, err)

	w := world.New("test", world.ModeSimulation, zap.NewNop())
	spawned := scene.Populate(w, g, zap.NewNop())
	require.Equal(t, 5, spawned, "1 weather + 3 props + 1 preview; unknown class skipped")

	all := w.ActorsOf(g.Root())
	require.Len(t, all, 5)
	require.Equal(t, "weather", all[0].Name(), "file order preserved")
	require.Equal(t, "Prop", all[1].Name(), "unnamed entries default to class name")
	require.True(t, all[4].Transient())
}
