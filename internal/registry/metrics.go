package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	handlersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foghorn_handlers_active",
			Help: "Number of handlers with an installed bus filter.",
		},
	)
	handlerActivations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foghorn_handler_activations_total",
			Help: "Handler activation attempts by handler and status.",
		},
		[]string{"handler", "status"},
	)
)
