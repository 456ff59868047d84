package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ItineraryRequests counts submissions by outcome (success, validation, transport, application).
	ItineraryRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "itinctl",
		Subsystem: "planner",
		Name:      "requests_total",
		Help:      "Total itinerary submissions by outcome",
	}, []string{"outcome"})

	ItineraryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "itinctl",
		Subsystem: "planner",
		Name:      "request_duration_seconds",
		Help:      "Latency of itinerary requests to the backend",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})

	RenderingDefects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "itinctl",
		Subsystem: "render",
		Name:      "defects_total",
		Help:      "Results that could only be rendered partially",
	})

	HealthProbes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "itinctl",
		Subsystem: "health",
		Name:      "probes_total",
		Help:      "Liveness probes by resulting status",
	}, []string{"status"})

	BackendOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "itinctl",
		Subsystem: "health",
		Name:      "backend_online",
		Help:      "1 if the last completed probe reported the backend healthy",
	})
)

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve starts a metrics listener in the background. Errors are reported on the returned channel.
func Serve(addr string) <-chan error {
	errc := make(chan error, 1)
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	go func() {
		errc <- http.ListenAndServe(addr, mux)
	}()
	return errc
}
