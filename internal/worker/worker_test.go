package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/observability"
	"github.com/spec-kit/admin-console/internal/repository"
)

type memoryAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
}

func (m *memoryAudit) Record(_ context.Context, entry *domain.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryAudit) ListRecent(context.Context, int) ([]domain.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AuditEntry(nil), m.entries...), nil
}

func (m *memoryAudit) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func TestAuditWorkerRecordsSessionEvents(t *testing.T) {
	repo := &memoryAudit{}
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w := StartAuditWorker(ctx, dispatcher, repo, metrics, zap.NewNop())

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID: "e1", Type: events.EventSessionEstablished, ClientID: "c1", Timestamp: now,
		Payload: events.SessionPayload{Role: domain.RoleAdmin, Subject: "u1", Reason: events.ReasonLogin},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID: "e2", Type: events.EventSessionCleared, ClientID: "c1", Timestamp: now,
		Payload: events.SessionPayload{Reason: events.ReasonLogout},
	}))

	require.Eventually(t, func() bool { return repo.count() == 2 }, time.Second, 5*time.Millisecond)
	entries, _ := repo.ListRecent(ctx, 10)
	assert.Equal(t, "session_established", entries[0].EventType)
	assert.Equal(t, domain.RoleAdmin, entries[0].Role)
	assert.Equal(t, now, entries[0].OccurredAt)

	gathered, err := testutil.GatherAndCount(metrics.Gatherer(), "console_session_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, gathered)

	cancel()
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestAuditWorkerDropsWhenQueueFull(t *testing.T) {
	repo := &memoryAudit{}
	w := NewAuditWorker(repo, nil, zap.NewNop(), 1)

	require.NoError(t, w.handle(context.Background(), events.Event{ID: "a", Type: events.EventSessionCleared}))
	require.NoError(t, w.handle(context.Background(), events.Event{ID: "b", Type: events.EventSessionCleared}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Run(ctx)
	assert.Equal(t, 1, repo.count())
}

func TestAuditWorkerToleratesDisabledStorage(t *testing.T) {
	repo := &memoryAudit{err: repository.ErrAuditDisabled}
	w := NewAuditWorker(repo, nil, zap.NewNop(), 4)

	require.NoError(t, w.handle(context.Background(), events.Event{ID: "a", Type: events.EventLoginRejected}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NotPanics(t, func() { w.Run(ctx) })
	assert.Zero(t, repo.count())
}

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep(time.Duration) int {
	s.calls.Add(1)
	return 1
}

func (s *countingSweeper) Len() int { return 0 }

func TestSessionSweeperRunsUntilCancelled(t *testing.T) {
	sweeper := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunSessionSweeper(ctx, sweeper, 5*time.Millisecond, time.Minute, observability.NewMetrics(), zap.NewNop())
		close(done)
	}()

	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSessionSweeperDisabled(t *testing.T) {
	sweeper := &countingSweeper{}
	RunSessionSweeper(context.Background(), sweeper, 0, time.Minute, nil, zap.NewNop())
	assert.Zero(t, sweeper.calls.Load())
}
