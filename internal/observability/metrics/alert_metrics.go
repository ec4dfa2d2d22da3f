package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Config carries the constant labels applied to every metric.
type Config struct {
	ServiceName string
	Environment string
}

// AlertMetrics tracks the health of the alert check pipeline.
type AlertMetrics struct {
	checkCycles          *prometheus.CounterVec
	facilitiesChecked    *prometheus.CounterVec
	changesDetected      *prometheus.CounterVec
	notificationsCreated *prometheus.CounterVec
	emailsSent           *prometheus.CounterVec
	trackedFacilities    prometheus.Gauge
}

var (
	alertMetricsOnce sync.Once
	alertMetrics     *AlertMetrics
)

func Alert() *AlertMetrics {
	return AlertWithConfig(Config{})
}

func AlertWithConfig(cfg Config) *AlertMetrics {
	alertMetricsOnce.Do(func() {
		alertMetrics = newAlertMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return alertMetrics
}

func ResetAlertMetricsForTest() {
	alertMetricsOnce = sync.Once{}
	alertMetrics = nil
}

func newAlertMetrics(registerer prometheus.Registerer, cfg Config) *AlertMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "carewatch"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	checkCycles := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "carewatch_alert_check_cycles_total",
			Help:        "Total alert check cycles run.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // completed | failed | skipped
	)

	facilitiesChecked := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "carewatch_facilities_checked_total",
			Help:        "Total per-facility checks performed.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // ok | failed
	)

	changesDetected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "carewatch_changes_detected_total",
			Help:        "Total facility changes detected, by category.",
			ConstLabels: constLabels,
		},
		[]string{"category"},
	)

	notificationsCreated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "carewatch_notifications_created_total",
			Help:        "Total notification rows persisted, by category.",
			ConstLabels: constLabels,
		},
		[]string{"category"},
	)

	emailsSent := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "carewatch_emails_total",
			Help:        "Total alert emails attempted.",
			ConstLabels: constLabels,
		},
		[]string{"result"}, // sent | failed
	)

	trackedFacilities := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:        "carewatch_tracked_facilities",
			Help:        "Number of facilities with a stored snapshot.",
			ConstLabels: constLabels,
		},
	)

	registerer.MustRegister(
		checkCycles,
		facilitiesChecked,
		changesDetected,
		notificationsCreated,
		emailsSent,
		trackedFacilities,
	)

	return &AlertMetrics{
		checkCycles:          checkCycles,
		facilitiesChecked:    facilitiesChecked,
		changesDetected:      changesDetected,
		notificationsCreated: notificationsCreated,
		emailsSent:           emailsSent,
		trackedFacilities:    trackedFacilities,
	}
}

func (m *AlertMetrics) IncCheckCycle(result string) {
	if m == nil {
		return
	}
	m.checkCycles.WithLabelValues(result).Inc()
}

func (m *AlertMetrics) IncFacilityChecked(result string) {
	if m == nil {
		return
	}
	m.facilitiesChecked.WithLabelValues(result).Inc()
}

func (m *AlertMetrics) IncChangeDetected(category string) {
	if m == nil {
		return
	}
	m.changesDetected.WithLabelValues(category).Inc()
}

func (m *AlertMetrics) IncNotificationCreated(category string) {
	if m == nil {
		return
	}
	m.notificationsCreated.WithLabelValues(category).Inc()
}

func (m *AlertMetrics) IncEmail(result string) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(result).Inc()
}

func (m *AlertMetrics) SetTrackedFacilities(count int) {
	if m == nil {
		return
	}
	m.trackedFacilities.Set(float64(count))
}
