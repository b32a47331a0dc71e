// Package observability exposes Prometheus collectors for the bot and
// an optional /metrics listener.
package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the assistant's collectors. A nil *Metrics is safe to
// use everywhere; every method no-ops.
type Metrics struct {
	updates        *prometheus.CounterVec
	handlerSeconds *prometheus.HistogramVec

	broadcastSent   prometheus.Counter
	broadcastFailed prometheus.Counter
	remindersSent   prometheus.Counter
}

// New registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		updates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "coachbot_updates_total",
			Help: "Inbound updates by kind.",
		}, []string{"kind"}),
		handlerSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coachbot_handler_seconds",
			Help:    "Turn handling latency by kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		broadcastSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "coachbot_broadcast_sent_total",
			Help: "Broadcast messages delivered.",
		}),
		broadcastFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "coachbot_broadcast_failed_total",
			Help: "Broadcast messages that failed to deliver.",
		}),
		remindersSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "coachbot_reminders_sent_total",
			Help: "Workout reminders delivered.",
		}),
	}
}

// ObserveUpdate counts one inbound update and its handling duration.
func (m *Metrics) ObserveUpdate(kind string, took time.Duration) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(kind).Inc()
	m.handlerSeconds.WithLabelValues(kind).Observe(took.Seconds())
}

// ObserveBroadcast records the outcome counts of one fan-out batch.
func (m *Metrics) ObserveBroadcast(sent, failed int) {
	if m == nil {
		return
	}
	m.broadcastSent.Add(float64(sent))
	m.broadcastFailed.Add(float64(failed))
}

// ObserveReminder counts one delivered reminder.
func (m *Metrics) ObserveReminder() {
	if m == nil {
		return
	}
	m.remindersSent.Inc()
}

// Serve exposes /metrics on the given address until ctx is done.
func Serve(ctx context.Context, listen string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
