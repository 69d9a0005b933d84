package metrics

import "github.com/prometheus/client_golang/prometheus"

// BoardMetrics tracks kitchen board activity.
type BoardMetrics struct {
	prints       *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	updateErrors *prometheus.CounterVec
	activeOrders prometheus.Gauge
	activeGroups prometheus.Gauge
}

// NewBoardMetrics registers the board metrics on the provided registerer.
func NewBoardMetrics(reg prometheus.Registerer) *BoardMetrics {
	if reg == nil {
		return &BoardMetrics{}
	}
	prints := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchenboard_prints_total",
		Help: "Kitchen tickets printed, by trigger.",
	}, []string{"trigger"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchenboard_transitions_total",
		Help: "Order status transitions applied by the board.",
	}, []string{"from", "to", "trigger"})
	updateErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchenboard_status_update_errors_total",
		Help: "Backend status updates that failed, by trigger.",
	}, []string{"trigger"})
	activeOrders := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kitchenboard_active_orders",
		Help: "Orders currently on the board.",
	})
	activeGroups := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "kitchenboard_active_groups",
		Help: "Table groups currently on the board.",
	})
	reg.MustRegister(prints, transitions, updateErrors, activeOrders, activeGroups)
	return &BoardMetrics{
		prints:       prints,
		transitions:  transitions,
		updateErrors: updateErrors,
		activeOrders: activeOrders,
		activeGroups: activeGroups,
	}
}

// IncPrint counts a printed ticket.
func (b *BoardMetrics) IncPrint(trigger string) {
	if b == nil || b.prints == nil {
		return
	}
	b.prints.WithLabelValues(normalizeLabel(trigger)).Inc()
}

// IncTransition counts an applied status transition.
func (b *BoardMetrics) IncTransition(from, to, trigger string) {
	if b == nil || b.transitions == nil {
		return
	}
	b.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to), normalizeLabel(trigger)).Inc()
}

// IncUpdateError counts a failed backend status update.
func (b *BoardMetrics) IncUpdateError(trigger string) {
	if b == nil || b.updateErrors == nil {
		return
	}
	b.updateErrors.WithLabelValues(normalizeLabel(trigger)).Inc()
}

// SetWorkingSet publishes the current board size.
func (b *BoardMetrics) SetWorkingSet(orders, groups int) {
	if b == nil || b.activeOrders == nil {
		return
	}
	b.activeOrders.Set(float64(orders))
	b.activeGroups.Set(float64(groups))
}
