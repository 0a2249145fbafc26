package notify

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kubev2v/resort-catalog/internal/store"
)

// MetricsObserver counts changes per table and action kind.
type MetricsObserver struct {
	changes *prometheus.CounterVec
}

func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resort_catalog",
			Name:      "changes_total",
			Help:      "Number of successful mutations by table and action.",
		}, []string{"table", "action"}),
	}
}

// Register adds the counters to reg.
func (o *MetricsObserver) Register(reg prometheus.Registerer) error {
	return reg.Register(o.changes)
}

func (o *MetricsObserver) Count(table, action string) prometheus.Counter {
	return o.changes.WithLabelValues(table, action)
}

func (o *MetricsObserver) OnChange(_ context.Context, subject store.Subject) error {
	o.changes.WithLabelValues(subject.Table(), string(subject.LastAction().Kind)).Inc()
	return nil
}
