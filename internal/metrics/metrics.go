// Package metrics holds the Prometheus metrics of the driver registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for driver lifecycle operations.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	DriversRegistered prometheus.Counter
	DriversDeleted    prometheus.Counter
	StatusChanges     *prometheus.CounterVec
	PayslipsUploaded  prometheus.Counter
	StoreFailures     *prometheus.CounterVec
	BackupDuration    prometheus.Histogram
}

// New creates the metrics and registers them with reg.
// Pass prometheus.NewRegistry() in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DriversRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "motoristas_drivers_registered_total",
			Help: "Total number of drivers registered",
		}),
		DriversDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "motoristas_drivers_deleted_total",
			Help: "Total number of drivers permanently deleted",
		}),
		StatusChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "motoristas_status_changes_total",
			Help: "Driver status changes by target status",
		}, []string{"status"}),
		PayslipsUploaded: f.NewCounter(prometheus.CounterOpts{
			Name: "motoristas_payslips_uploaded_total",
			Help: "Total number of payslips archived",
		}),
		StoreFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "motoristas_store_failures_total",
			Help: "Swallowed record store and archive failures by operation",
		}, []string{"op"}),
		BackupDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "motoristas_backup_duration_seconds",
			Help:    "Duration of full backup creation",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

func (m *Metrics) IncrementRegistered() {
	if m != nil {
		m.DriversRegistered.Inc()
	}
}

func (m *Metrics) IncrementDeleted() {
	if m != nil {
		m.DriversDeleted.Inc()
	}
}

func (m *Metrics) IncrementStatusChange(status string) {
	if m != nil {
		m.StatusChanges.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncrementPayslips() {
	if m != nil {
		m.PayslipsUploaded.Inc()
	}
}

// IncrementStoreFailure records a failure that was logged and swallowed.
func (m *Metrics) IncrementStoreFailure(op string) {
	if m != nil {
		m.StoreFailures.WithLabelValues(op).Inc()
	}
}

// ObserveBackup records the duration of a backup.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveBackup(start time.Time) {
	if m != nil {
		m.BackupDuration.Observe(time.Since(start).Seconds())
	}
}
