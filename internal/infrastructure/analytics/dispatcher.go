package analytics

import (
	"context"
	"sync"
	"time"

	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/logger"
	"mucevher-backend/pkg/metrics"
)

const defaultSendTimeout = 5 * time.Second

// Dispatcher is an asynchronous AnalyticsTracker. Track enqueues into a
// bounded buffer and never blocks; a single worker fans each event out to
// every sink. Events that arrive while the buffer is full are dropped.
type Dispatcher struct {
	sinks       []domain.AnalyticsSink
	events      chan domain.AnalyticsEvent
	metrics     *metrics.ServerMetrics
	sendTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(buffer int, m *metrics.ServerMetrics, sinks ...domain.AnalyticsSink) *Dispatcher {
	if buffer <= 0 {
		buffer = 1
	}
	d := &Dispatcher{
		sinks:       sinks,
		events:      make(chan domain.AnalyticsEvent, buffer),
		metrics:     m,
		sendTimeout: defaultSendTimeout,
		done:        make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) Track(ctx context.Context, event domain.AnalyticsEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.events <- event:
	default:
		d.metrics.AnalyticsEvent("buffer", "dropped")
		logger.WithContext(ctx).Warn().Str("event", event.Name).Msg("Analytics buffer full, dropping event")
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.events {
		for _, sink := range d.sinks {
			d.deliver(sink, event)
		}
	}
}

func (d *Dispatcher) deliver(sink domain.AnalyticsSink, event domain.AnalyticsEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := sink.Send(ctx, event); err != nil {
		d.metrics.AnalyticsEvent(sink.Name(), "failed")
		logger.Warn().Err(err).
			Str("sink", sink.Name()).
			Str("event", event.Name).
			Str("event_id", event.ID).
			Msg("Analytics delivery failed")
		return
	}
	d.metrics.AnalyticsEvent(sink.Name(), "sent")
}

// Shutdown stops accepting events and waits for the buffer to drain or ctx
// to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.events)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
