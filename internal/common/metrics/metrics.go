// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AlertsRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alerts_routed_total",
			Help: "Total number of critical alerts routed",
		},
		[]string{"event_type", "policy"},
	)

	AlertSendsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_sends_failed_total",
			Help: "Total number of failed alert destination sends",
		},
		[]string{"event_type", "channel"},
	)

	RemindersSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "subscription_reminders_sent_total",
			Help: "Total number of subscription expiry reminders sent",
		},
	)

	ReminderScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "subscription_reminder_scan_duration_seconds",
			Help: "Duration of a full subscription reminder scan",
		},
	)

	RenewalsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subscription_renewals_total",
			Help: "Total number of subscription renewals processed",
		},
		[]string{"mode"}, // "stacked" or "immediate"
	)
)
