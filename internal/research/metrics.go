package research

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "breakdown_research_fallback_total",
	Help: "Times the encyclopedia fallback searcher was consulted.",
})
