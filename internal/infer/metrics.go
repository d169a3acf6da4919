package infer

import "github.com/prometheus/client_golang/prometheus"

var invocationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "askd",
		Subsystem: "infer",
		Name:      "invocations_total",
		Help:      "Total backend invocations by outcome",
	},
	[]string{"backend", "outcome"},
)

func init() {
	prometheus.MustRegister(invocationsTotal)
}
