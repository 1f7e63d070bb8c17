package persist

import (
	"context"
	"fmt"
	"time"
)

// AuditEvent classifies one singleton protocol decision.
type AuditEvent string

const (
	AuditPromoted         AuditEvent = "promoted"
	AuditRetired          AuditEvent = "retired"
	AuditResolutionFailed AuditEvent = "resolution_failed"
)

// AuditEntry is one recorded decision. Every entry carries world, class and
// actor identity so post-hoc log analysis can reconstruct what happened in
// which world without correlating against other logs.
type AuditEntry struct {
	Event     AuditEvent
	World     string
	Class     string
	ActorID   uint64
	ActorName string
	At        time.Time
}

// Sink receives batches of audit entries. The daemon wires the Postgres
// repo; tests use MemorySink; NopSink disables auditing.
type Sink interface {
	Record(ctx context.Context, entries []AuditEntry) error
}

// AuditRepo persists audit entries to Postgres.
type AuditRepo struct {
	db *DB
}

func NewAuditRepo(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Record writes a batch of entries in a single transaction.
func (r *AuditRepo) Record(ctx context.Context, entries []AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("audit begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO singleton_audit (event, world, class, actor_id, actor_name, occurred_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			string(e.Event), e.World, e.Class, int64(e.ActorID), e.ActorName, e.At,
		); err != nil {
			return fmt.Errorf("audit insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// MemorySink accumulates entries in memory. Test use only.
type MemorySink struct {
	Entries []AuditEntry
}

func (s *MemorySink) Record(_ context.Context, entries []AuditEntry) error {
	s.Entries = append(s.Entries, entries...)
	return nil
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Record(context.Context, []AuditEntry) error { return nil }
