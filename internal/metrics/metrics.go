package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActionsQueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opsconsole_actions_queued_total",
		Help: "Total number of intents deferred to the offline queue.",
	})

	ActionsSyncedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opsconsole_actions_synced_total",
		Help: "Total number of queued intents replayed successfully.",
	})

	ActionsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opsconsole_actions_failed_total",
		Help: "Total number of queued intents that failed during replay.",
	})

	RecoveryRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "opsconsole_recovery_runs_total",
		Help: "Total number of completed recovery drains.",
	})

	DirectAppliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "opsconsole_direct_applies_total",
		Help: "Total number of intents applied immediately while online.",
	},
		[]string{"action"},
	)

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "opsconsole_queue_depth",
		Help: "Current number of entries held by the action queue.",
	})
)
