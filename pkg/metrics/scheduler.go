package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes and skip reasons recorded for scheduler ticks.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	SkipDisabled   = "disabled"
	SkipStandby    = "standby"
	SkipLeaseError = "lease_error"
)

// TaskMetrics tracks board scheduler ticks: how long each run took, how it ended, why a tick was
// skipped, and whether this replica currently drives the exclusive tasks.
type TaskMetrics struct {
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	skips    *prometheus.CounterVec
	leader   prometheus.Gauge
}

func NewTaskMetrics(reg prometheus.Registerer) *TaskMetrics {
	if reg == nil {
		return &TaskMetrics{}
	}
	m := &TaskMetrics{
		// Board ticks are short backend round trips; 5ms to ~5s.
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kitchenboard_task_duration_seconds",
			Help:    "Duration of board scheduler task runs in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 11),
		}, []string{"task"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kitchenboard_task_runs_total",
			Help: "Board scheduler task runs by outcome.",
		}, []string{"task", "outcome"}),
		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kitchenboard_task_skips_total",
			Help: "Board scheduler ticks skipped because the toggle was off or another replica holds the lease.",
		}, []string{"task", "reason"}),
		leader: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kitchenboard_scheduler_leader",
			Help: "1 while this replica holds the board lease.",
		}),
	}
	reg.MustRegister(m.duration, m.runs, m.skips, m.leader)
	return m
}

// ObserveRun records one completed run; a non-nil err counts as a failure.
func (m *TaskMetrics) ObserveRun(task string, took time.Duration, err error) {
	if m == nil || m.duration == nil {
		return
	}
	task = normalizeLabel(task)
	m.duration.WithLabelValues(task).Observe(took.Seconds())
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.runs.WithLabelValues(task, outcome).Inc()
}

func (m *TaskMetrics) IncSkip(task, reason string) {
	if m == nil || m.skips == nil {
		return
	}
	m.skips.WithLabelValues(normalizeLabel(task), normalizeLabel(reason)).Inc()
}

func (m *TaskMetrics) SetLeader(held bool) {
	if m == nil || m.leader == nil {
		return
	}
	if held {
		m.leader.Set(1)
		return
	}
	m.leader.Set(0)
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
