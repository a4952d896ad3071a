package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "breakdown_requests_total",
	Help: "Breakdown requests by outcome.",
}, []string{"outcome"})
