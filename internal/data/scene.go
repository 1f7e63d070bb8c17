package data

import (
	"fmt"
	"os"

	"github.com/simforge/server/internal/core/typegraph"
	"github.com/simforge/server/internal/core/world"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SceneActor is one persisted spawn entry. Entries spawn in file order, which
// is what makes duplicate resolution deterministic for loaded scenes.
type SceneActor struct {
	Class     string  `yaml:"class"`
	Name      string  `yaml:"name"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Heading   float64 `yaml:"heading"`
	Transient bool    `yaml:"transient"`
	Count     int     `yaml:"count"` // 0 means 1
}

type sceneFile struct {
	Actors []SceneActor `yaml:"actors"`
}

// Scene holds the ordered spawn list loaded from a YAML scene file.
type Scene struct {
	Actors []SceneActor
}

// LoadScene loads a scene spawn list from a YAML file.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	var f sceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &Scene{Actors: f.Actors}, nil
}

// Populate spawns every scene entry into w, resolving classes against the
// graph. Unknown classes are logged and skipped rather than aborting the
// load. Returns the number of actors spawned.
func (s *Scene) Populate(w *world.World, g *typegraph.Graph, log *zap.Logger) int {
	total := 0
	for _, entry := range s.Actors {
		class := g.Lookup(entry.Class)
		if class == nil {
			log.Warn("scene: unknown actor class", zap.String("class", entry.Class))
			continue
		}
		count := entry.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			w.Spawn(class, world.SpawnSpec{
				Name:      entry.Name,
				Transform: world.Transform{X: entry.X, Y: entry.Y, Heading: entry.Heading},
				Transient: entry.Transient,
			})
			total++
		}
	}
	return total
}
