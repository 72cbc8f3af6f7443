package daemon

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	busReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foghorn_bus_reconnects_total",
			Help: "Number of times the bus connection was lost and a reconnect scheduled.",
		},
	)
	busDialTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foghorn_bus_dial_total",
			Help: "Bus connection attempts by result.",
		},
		[]string{"result"},
	)
	busConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foghorn_bus_connected",
			Help: "1 while a bus connection is established, 0 otherwise.",
		},
	)
)
