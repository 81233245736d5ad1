// Package metrics exports activate.Pool counters to Prometheus.
//
// Every metric is read from the pool's Stats when scraped, so registering a
// pool adds no work to Update. Pools are not safe for concurrent use: scrape
// from the goroutine that drives Update, or guard both with the same lock
// via a custom Source.
package metrics

import (
	"errors"

	"github.com/phanxgames/activate"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "activate"
	subsystem = "pool"
)

// Source is anything that reports pool stats. *activate.Pool satisfies it.
type Source interface {
	Stats() activate.Stats
}

// Register adds gauges and counters for src to reg, labelled pool=name.
//
// Exported series:
//
//	activate_pool_active               active indices after the last update
//	activate_pool_capacity             maximum active indices
//	activate_pool_watched              size of the watch domain
//	activate_pool_updates_total        completed updates
//	activate_pool_activations_total    indices that joined the active set
//	activate_pool_deactivations_total  indices that left the active set
//	activate_pool_rejected_total       positive scores turned away by a full pool
func Register(reg prometheus.Registerer, name string, src Source) error {
	labels := prometheus.Labels{"pool": name}
	gauge := func(metric, help string, fn func(activate.Stats) int) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		}, func() float64 { return float64(fn(src.Stats())) })
	}
	counter := func(metric, help string, fn func(activate.Stats) uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		}, func() float64 { return float64(fn(src.Stats())) })
	}

	collectors := []prometheus.Collector{
		gauge("active", "Active indices after the last update", func(s activate.Stats) int { return s.Active }),
		gauge("capacity", "Maximum number of active indices", func(s activate.Stats) int { return s.Capacity }),
		gauge("watched", "Size of the watch domain", func(s activate.Stats) int { return s.Size }),
		counter("updates_total", "Completed pool updates", func(s activate.Stats) uint64 { return s.Updates }),
		counter("activations_total", "Indices that joined the active set", func(s activate.Stats) uint64 { return s.Activated }),
		counter("deactivations_total", "Indices that left the active set", func(s activate.Stats) uint64 { return s.Deactivated }),
		counter("rejected_total", "Positive scores turned away by a full pool", func(s activate.Stats) uint64 { return s.Rejected }),
	}

	var errs []error
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
