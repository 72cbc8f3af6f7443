package plugin

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foghorn_signals_total",
			Help: "Total signals matched by a handler, by outcome.",
		},
		[]string{"handler", "member", "result"},
	)
)

const (
	resultRelayed     = "relayed"
	resultDecodeError = "decode_error"
	resultEncodeError = "encode_error"
)
