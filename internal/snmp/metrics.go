package snmp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trapSendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foghorn_trap_send_total",
			Help: "Total trap transmissions by notification and status.",
		},
		[]string{"trap", "status"},
	)
	trapSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foghorn_trap_send_duration_seconds",
			Help:    "Duration of trap transmissions.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"status"},
	)
)
