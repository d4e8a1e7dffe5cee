package redis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var presenceLookupFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "presence_lookup_failures_total",
	Help: "Presence store reads that failed and degraded to not-viewing.",
})
