package system

import (
	"context"
	"time"

	"github.com/simforge/server/internal/core/event"
	coresys "github.com/simforge/server/internal/core/system"
	"github.com/simforge/server/internal/persist"
	"go.uber.org/zap"
)

// AuditSystem subscribes to singleton lifecycle events and flushes them to
// the audit sink in batches each tick. Phase 3 (Persist). A failed flush is
// logged and the batch retried next tick; the protocol itself never blocks
// on persistence.
type AuditSystem struct {
	sink persist.Sink
	log  *zap.Logger

	pending []persist.AuditEntry
}

func NewAuditSystem(bus *event.Bus, sink persist.Sink, log *zap.Logger) *AuditSystem {
	s := &AuditSystem{sink: sink, log: log}

	event.Subscribe(bus, func(ev event.Promoted) {
		s.pending = append(s.pending, persist.AuditEntry{
			Event:     persist.AuditPromoted,
			World:     ev.World,
			Class:     ev.Class,
			ActorID:   uint64(ev.Actor),
			ActorName: ev.Name,
			At:        time.Now(),
		})
	})
	event.Subscribe(bus, func(ev event.Retired) {
		s.pending = append(s.pending, persist.AuditEntry{
			Event:     persist.AuditRetired,
			World:     ev.World,
			Class:     ev.Class,
			ActorID:   uint64(ev.Actor),
			ActorName: ev.Name,
			At:        time.Now(),
		})
	})
	event.Subscribe(bus, func(ev event.ResolutionFailed) {
		s.pending = append(s.pending, persist.AuditEntry{
			Event:     persist.AuditResolutionFailed,
			World:     ev.World,
			Class:     ev.Class,
			ActorID:   uint64(ev.Actor),
			ActorName: ev.Name,
			At:        time.Now(),
		})
	})

	return s
}

func (s *AuditSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *AuditSystem) Update(_ time.Duration) {
	if len(s.pending) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.sink.Record(ctx, s.pending); err != nil {
		s.log.Error("audit flush failed, will retry", zap.Int("entries", len(s.pending)), zap.Error(err))
		return
	}
	s.pending = s.pending[:0]
}

// Flush writes any buffered entries immediately. Called at shutdown.
func (s *AuditSystem) Flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	if err := s.sink.Record(ctx, s.pending); err != nil {
		return err
	}
	s.pending = s.pending[:0]
	return nil
}
