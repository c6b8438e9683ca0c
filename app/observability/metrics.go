package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MatchMetrics records match service and handler activity.
type MatchMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordDBQueryDuration(ctx context.Context, duration time.Duration)

	RecordScoreEntered(ctx context.Context)
	RecordHoleCompleted(ctx context.Context)
	RecordPressesCreated(ctx context.Context, count int)
	RecordMatchCompleted(ctx context.Context)

	RecordHandlerAttempt(ctx context.Context, handlerName string)
	RecordHandlerSuccess(ctx context.Context, handlerName string)
	RecordHandlerFailure(ctx context.Context, handlerName string)
	RecordHandlerDuration(ctx context.Context, handlerName string, duration time.Duration)
}

type prometheusMatchMetrics struct {
	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	dbQueryDuration   prometheus.Histogram
	scoresEntered     prometheus.Counter
	holesCompleted    prometheus.Counter
	pressesCreated    prometheus.Counter
	matchesCompleted  prometheus.Counter
	handlers          *prometheus.CounterVec
	handlerDuration   *prometheus.HistogramVec
}

// NewPrometheusMatchMetrics registers the match collectors on registry.
func NewPrometheusMatchMetrics(registry prometheus.Registerer) MatchMetrics {
	m := &prometheusMatchMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "operations_total",
			Help:      "Match service operations by outcome.",
		}, []string{"operation", "outcome"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "operation_duration_seconds",
			Help:      "Match service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		dbQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "db_query_duration_seconds",
			Help:      "Match repository round-trip latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		scoresEntered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "scores_entered_total",
			Help:      "Hole scores written or cleared.",
		}),
		holesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "holes_completed_total",
			Help:      "Holes that became complete.",
		}),
		pressesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "presses_created_total",
			Help:      "Presses declared.",
		}),
		matchesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "matches_completed_total",
			Help:      "Matches marked complete.",
		}),
		handlers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "handler_messages_total",
			Help:      "Event handler invocations by outcome.",
		}, []string{"handler", "outcome"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "handler_duration_seconds",
			Help:      "Event handler latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
	}

	registry.MustRegister(
		m.operations, m.operationDuration, m.dbQueryDuration,
		m.scoresEntered, m.holesCompleted, m.pressesCreated, m.matchesCompleted,
		m.handlers, m.handlerDuration,
	)
	return m
}

func (m *prometheusMatchMetrics) RecordOperationAttempt(_ context.Context, op string) {
	m.operations.WithLabelValues(op, "attempt").Inc()
}

func (m *prometheusMatchMetrics) RecordOperationSuccess(_ context.Context, op string) {
	m.operations.WithLabelValues(op, "success").Inc()
}

func (m *prometheusMatchMetrics) RecordOperationFailure(_ context.Context, op string) {
	m.operations.WithLabelValues(op, "failure").Inc()
}

func (m *prometheusMatchMetrics) RecordOperationDuration(_ context.Context, op string, d time.Duration) {
	m.operationDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *prometheusMatchMetrics) RecordDBQueryDuration(_ context.Context, d time.Duration) {
	m.dbQueryDuration.Observe(d.Seconds())
}

func (m *prometheusMatchMetrics) RecordScoreEntered(context.Context)  { m.scoresEntered.Inc() }
func (m *prometheusMatchMetrics) RecordHoleCompleted(context.Context) { m.holesCompleted.Inc() }
func (m *prometheusMatchMetrics) RecordMatchCompleted(context.Context) {
	m.matchesCompleted.Inc()
}

func (m *prometheusMatchMetrics) RecordPressesCreated(_ context.Context, count int) {
	m.pressesCreated.Add(float64(count))
}

func (m *prometheusMatchMetrics) RecordHandlerAttempt(_ context.Context, name string) {
	m.handlers.WithLabelValues(name, "attempt").Inc()
}

func (m *prometheusMatchMetrics) RecordHandlerSuccess(_ context.Context, name string) {
	m.handlers.WithLabelValues(name, "success").Inc()
}

func (m *prometheusMatchMetrics) RecordHandlerFailure(_ context.Context, name string) {
	m.handlers.WithLabelValues(name, "failure").Inc()
}

func (m *prometheusMatchMetrics) RecordHandlerDuration(_ context.Context, name string, d time.Duration) {
	m.handlerDuration.WithLabelValues(name).Observe(d.Seconds())
}

// NoOpMetrics discards everything. Used in tests and when metrics are disabled.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordDBQueryDuration(context.Context, time.Duration)           {}
func (NoOpMetrics) RecordScoreEntered(context.Context)                             {}
func (NoOpMetrics) RecordHoleCompleted(context.Context)                            {}
func (NoOpMetrics) RecordPressesCreated(context.Context, int)                      {}
func (NoOpMetrics) RecordMatchCompleted(context.Context)                           {}
func (NoOpMetrics) RecordHandlerAttempt(context.Context, string)                   {}
func (NoOpMetrics) RecordHandlerSuccess(context.Context, string)                   {}
func (NoOpMetrics) RecordHandlerFailure(context.Context, string)                   {}
func (NoOpMetrics) RecordHandlerDuration(context.Context, string, time.Duration)   {}
