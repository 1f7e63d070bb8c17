package world

import "fmt"

// Subsystem is a per-world keyed service. Exactly one instance of each
// subsystem exists per world; PostInitialize fires once when the world
// finishes initializing, after any load-time actors have been spawned.
type Subsystem interface {
	Name() string
	PostInitialize(w *World)
}

// AddSubsystem registers a subsystem. Must happen before InitSubsystems.
func (w *World) AddSubsystem(s Subsystem) error {
	if w.ready {
		return fmt.Errorf("add subsystem %s: world %s already initialized", s.Name(), w.name)
	}
	if _, exists := w.byName[s.Name()]; exists {
		return fmt.Errorf("add subsystem %s: already registered", s.Name())
	}
	w.subsystems = append(w.subsystems, s)
	w.byName[s.Name()] = s
	return nil
}

// Subsystem returns the registered subsystem under name, or nil. Callers
// that need the subsystem before initialization completes must be prepared
// for it to report itself not ready.
func (w *World) Subsystem(name string) Subsystem {
	return w.byName[name]
}

// InitSubsystems marks the world ready and fires PostInitialize on every
// subsystem in registration order. Called once, after load-time population.
func (w *World) InitSubsystems() {
	if w.ready {
		return
	}
	w.ready = true
	for _, s := range w.subsystems {
		s.PostInitialize(w)
	}
}
