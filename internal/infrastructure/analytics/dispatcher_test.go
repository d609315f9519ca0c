package analytics

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	name  string
	err   error
	block chan struct{}

	entered atomic.Int32
	mu      sync.Mutex
	events  []domain.AnalyticsEvent
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Send(_ context.Context, e domain.AnalyticsEvent) error {
	s.entered.Add(1)
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func event(name string) domain.AnalyticsEvent {
	return domain.AnalyticsEvent{ID: name, Name: name, SessionID: "s1"}
}

func TestDispatcher_FansOutToEverySink(t *testing.T) {
	m := metrics.NewServerMetrics("test")
	ok := &recordingSink{name: "ok"}
	failing := &recordingSink{name: "failing", err: errors.New("unreachable")}
	d := NewDispatcher(8, m, ok, failing)

	d.Track(context.Background(), event(domain.EventSearch))
	d.Track(context.Background(), event(domain.EventAddToCart))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))

	assert.Equal(t, 2, ok.count())
	assert.Equal(t, 2, failing.count())
	assert.Equal(t, domain.EventSearch, ok.events[0].Name)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnalyticsEvents.WithLabelValues("ok", "sent")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnalyticsEvents.WithLabelValues("failing", "failed")))
}

func TestDispatcher_DropsWhenBufferFull(t *testing.T) {
	m := metrics.NewServerMetrics("test")
	sink := &recordingSink{name: "slow", block: make(chan struct{})}
	d := NewDispatcher(1, m, sink)

	// The worker takes the first event and blocks in Send; the second fills
	// the buffer and the rest are dropped.
	d.Track(context.Background(), event("e1"))
	require.Eventually(t, func() bool { return sink.entered.Load() == 1 }, time.Second, time.Millisecond)
	d.Track(context.Background(), event("e2"))
	d.Track(context.Background(), event("e3"))
	d.Track(context.Background(), event("e4"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnalyticsEvents.WithLabelValues("buffer", "dropped")))

	close(sink.block)
	require.NoError(t, d.Shutdown(context.Background()))
	assert.Equal(t, 2, sink.count())
}

func TestDispatcher_TrackAfterShutdownIsIgnored(t *testing.T) {
	sink := &recordingSink{name: "ok"}
	d := NewDispatcher(4, nil, sink)

	require.NoError(t, d.Shutdown(context.Background()))
	require.NoError(t, d.Shutdown(context.Background()))

	d.Track(context.Background(), event("late"))
	assert.Equal(t, 0, sink.count())
}

func TestDispatcher_ShutdownRespectsContext(t *testing.T) {
	sink := &recordingSink{name: "stuck", block: make(chan struct{})}
	d := NewDispatcher(4, nil, sink)
	d.Track(context.Background(), event("e1"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Shutdown(ctx), context.DeadlineExceeded)

	close(sink.block)
}
