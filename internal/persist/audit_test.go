package persist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemorySinkAccumulates(t *testing.T) {
	sink := &MemorySink{}
	now := time.Now()

	err := sink.Record(context.Background(), []AuditEntry{
		{Event: AuditPromoted, World: "main", Class: "WeatherController", ActorID: 1, At: now},
	})
	require.NoError(t, err)
	err = sink.Record(context.Background(), []AuditEntry{
		{Event: AuditRetired, World: "main", Class: "WeatherController", ActorID: 2, At: now},
		{Event: AuditResolutionFailed, World: "main", Class: "Orphan", ActorID: 3, At: now},
	})
	require.NoError(t, err)

	require.Len(t, sink.Entries, 3)
	require.Equal(t, AuditPromoted, sink.Entries[0].Event)
	require.Equal(t, uint64(3), sink.Entries[2].ActorID)
}

func TestNopSink(t *testing.T) {
	require.NoError(t, NopSink{}.Record(context.Background(), []AuditEntry{{Event: AuditPromoted}}))
}
