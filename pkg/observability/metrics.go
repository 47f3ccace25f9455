package observability

import (
	"fmt"
	"io"

	"github.com/BenKalegin/clouddiagram-sub004/pkg/selection"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/undo"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/view"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "clouddiagram"

// Metrics holds the collectors of one session.
type Metrics struct {
	registry *prometheus.Registry

	Edits            prometheus.Counter
	Changes          *prometheus.CounterVec
	Undos            prometheus.Counter
	Redos            prometheus.Counter
	DiscardedEdits   prometheus.Counter
	SelectionChanges prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Edits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edits_total",
			Help:      "Undoable edits produced by closed transactions.",
		}),
		Changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_total",
			Help:      "Changes applied by closed transactions, by kind.",
		}, []string{"kind"}),
		Undos: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "undo_total",
			Help:      "Undo calls that reverted at least one edit.",
		}),
		Redos: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redo_total",
			Help:      "Redo calls that re-applied at least one edit.",
		}),
		DiscardedEdits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discarded_edits_total",
			Help:      "Edits dropped from history by capacity, a new edit after undo, or a clear.",
		}),
		SelectionChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_changes_total",
			Help:      "Selection change notifications.",
		}),
	}
	m.registry.MustRegister(m.Edits, m.Changes, m.Undos, m.Redos, m.DiscardedEdits, m.SelectionChanges)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveTransactions counts edits and changes.
func (m *Metrics) ObserveTransactions(tx *undo.Transactions) {
	tx.OnChange(func(ev undo.ChangeEvent) {
		m.Edits.Inc()
		for _, c := range ev.Changes {
			m.Changes.WithLabelValues(undo.KindOf(c)).Inc()
		}
	})
}

// ObserveHistory counts undo, redo and discarded edits and exposes the
// history depth.
func (m *Metrics) ObserveHistory(um *undo.Manager) {
	um.OnAdd(func(e *undo.Edit) {
		e.OnDie(m.DiscardedEdits.Inc)
	})
	um.OnUndo(func(undo.Event) { m.Undos.Inc() })
	um.OnRedo(func(undo.Event) { m.Redos.Inc() })
	m.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_edits",
			Help:      "Edits currently kept in the undo history.",
		}, func() float64 { return float64(um.Len()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_cursor",
			Help:      "Position of the undo cursor.",
		}, func() float64 { return float64(um.Cursor()) }),
	)
}

// ObserveView exposes the state cache counters.
func (m *Metrics) ObserveView(v *view.View) {
	m.registry.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "states_computed_total",
			Help:      "View states computed.",
		}, func() float64 { return float64(v.Stats().Computed) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "states_invalidated_total",
			Help:      "View states dropped by invalidation.",
		}, func() float64 { return float64(v.Stats().Invalidated) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "view",
			Name:      "states_cached",
			Help:      "View states currently cached.",
		}, func() float64 { return float64(v.Stats().Cached) }),
	)
}

// ObserveSelection counts selection changes.
func (m *Metrics) ObserveSelection(s *selection.Model) {
	s.OnChange(func(selection.Event) { m.SelectionChanges.Inc() })
}

// WriteText writes every metric in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
