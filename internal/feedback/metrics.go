package feedback

import (
	"strconv"

	"rewards_wheel/internal/wheel"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	SpinsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wheel_spins_started_total",
			Help: "Total spins started per wheel",
		},
		[]string{"wheel"},
	)
	SpinTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wheel_spin_ticks_total",
			Help: "Total tick events emitted per wheel",
		},
		[]string{"wheel"},
	)
	SpinsSettled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wheel_spins_settled_total",
			Help: "Total settled spins per wheel and segment",
		},
		[]string{"wheel", "segment"},
	)
)

func init() {
	prometheus.MustRegister(SpinsStarted)
	prometheus.MustRegister(SpinTicks)
	prometheus.MustRegister(SpinsSettled)
}

// Metrics counts spin events for one wheel.
type Metrics struct {
	wheelID string
	table   *wheel.Table
}

// NewMetrics creates a metrics emitter. Segment labels come from table.
func NewMetrics(wheelID string, table *wheel.Table) *Metrics {
	return &Metrics{wheelID: wheelID, table: table}
}

func (m *Metrics) SpinStarted(wheel.SpinPlan) {
	SpinsStarted.WithLabelValues(m.wheelID).Inc()
}

func (m *Metrics) Tick() {
	SpinTicks.WithLabelValues(m.wheelID).Inc()
}

func (m *Metrics) SpinSettled(index int) {
	SpinsSettled.WithLabelValues(m.wheelID, m.segmentLabel(index)).Inc()
}

func (m *Metrics) segmentLabel(index int) string {
	if m.table != nil {
		if s, ok := m.table.Segment(index); ok {
			return s.Label
		}
	}
	return strconv.Itoa(index)
}
