package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/domain"
	"github.com/spec-kit/admin-console/internal/events"
	"github.com/spec-kit/admin-console/internal/observability"
	"github.com/spec-kit/admin-console/internal/repository"
)

const defaultAuditBuffer = 256

// AuditWorker counts session transitions and writes them to the audit
// repository off the request path.
type AuditWorker struct {
	repo    repository.AuditRepository
	metrics *observability.Metrics
	logger  *zap.Logger
	queue   chan events.Event
	done    chan struct{}

	stopOnce sync.Once
}

// NewAuditWorker builds a worker. A nil repo only logs and counts.
func NewAuditWorker(repo repository.AuditRepository, metrics *observability.Metrics, logger *zap.Logger, buffer int) *AuditWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = defaultAuditBuffer
	}
	return &AuditWorker{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		queue:   make(chan events.Event, buffer),
		done:    make(chan struct{}),
	}
}

// StartAuditWorker registers the worker on dispatcher and runs it until ctx
// is cancelled.
func StartAuditWorker(ctx context.Context, dispatcher events.Dispatcher, repo repository.AuditRepository, metrics *observability.Metrics, logger *zap.Logger) *AuditWorker {
	w := NewAuditWorker(repo, metrics, logger, defaultAuditBuffer)
	if dispatcher != nil {
		w.RegisterHandlers(dispatcher)
	}
	go w.Run(ctx)
	return w
}

// RegisterHandlers subscribes to every session event.
func (w *AuditWorker) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventSessionEstablished, w.handle)
	dispatcher.Subscribe(events.EventSessionCleared, w.handle)
	dispatcher.Subscribe(events.EventLoginRejected, w.handle)
}

func (w *AuditWorker) handle(_ context.Context, event events.Event) error {
	w.metrics.RecordTransition(string(event.Type), event.Payload.Reason)
	w.logger.Info("session transition",
		zap.String("event", string(event.Type)),
		zap.String("client_id", event.ClientID),
		zap.String("role", string(event.Payload.Role)),
		zap.String("reason", event.Payload.Reason),
	)
	if w.repo == nil {
		return nil
	}
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("audit queue full; dropping event", zap.String("event_id", event.ID))
	}
	return nil
}

// Run drains the queue into the repository until ctx is cancelled, then
// flushes what is already queued.
func (w *AuditWorker) Run(ctx context.Context) {
	defer w.stopOnce.Do(func() { close(w.done) })
	for {
		select {
		case event := <-w.queue:
			w.record(ctx, event)
		case <-ctx.Done():
			w.flush()
			return
		}
	}
}

// Done is closed once Run has returned.
func (w *AuditWorker) Done() <-chan struct{} {
	return w.done
}

func (w *AuditWorker) flush() {
	for {
		select {
		case event := <-w.queue:
			w.record(context.Background(), event)
		default:
			return
		}
	}
}

func (w *AuditWorker) record(ctx context.Context, event events.Event) {
	entry := &domain.AuditEntry{
		ID:         event.ID,
		ClientID:   event.ClientID,
		EventType:  string(event.Type),
		Role:       event.Payload.Role,
		Subject:    event.Payload.Subject,
		Reason:     event.Payload.Reason,
		OccurredAt: event.Timestamp,
	}
	err := w.repo.Record(ctx, entry)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrAuditDisabled):
		w.logger.Debug("audit storage disabled", zap.String("event_id", event.ID))
	default:
		w.logger.Warn("audit write failed", zap.String("event_id", event.ID), zap.Error(err))
	}
}
