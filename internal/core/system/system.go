package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseEvents   Phase = iota // 0: swap + dispatch last tick's events
	PhaseUpdate                // 1: simulation logic
	PhaseDeferred              // 2: run one-shot next-tick continuations
	PhasePersist               // 3: flush audit batches
	PhaseCleanup               // 4: finalize queued actor destructions
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
