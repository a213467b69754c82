package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OutcomeOK labels a successful extraction
const OutcomeOK = "ok"

// Collector records extraction outcomes and upstream latency.
// A nil *Collector is valid and records nothing.
type Collector struct {
	extractions   *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	registry      *prometheus.Registry
}

// New creates a Collector backed by its own registry
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
	}
	c.extractions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cryptoprice",
		Name:      "extractions_total",
		Help:      "Number of price extractions by source and outcome",
	}, []string{"source", "outcome"})
	c.fetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cryptoprice",
		Name:      "extraction_duration_seconds",
		Help:      "Time spent fetching and parsing an upstream page",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	c.registry.MustRegister(c.extractions, c.fetchDuration)
	return c
}

// ObserveExtraction records one finished extraction
func (c *Collector) ObserveExtraction(source, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.extractions.WithLabelValues(source, outcome).Inc()
	c.fetchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// Extractions exposes the outcome counter, mainly for tests
func (c *Collector) Extractions() *prometheus.CounterVec {
	return c.extractions
}

// Handler returns the HTTP handler serving this collector's registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Server exposes /metrics and /healthz
type Server struct {
	server *http.Server
}

// NewServer creates a metrics server listening on addr
func NewServer(addr string, c *Collector) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (s *Server) Serve() error                       { return s.server.ListenAndServe() }
func (s *Server) Shutdown(ctx context.Context) error { return s.server.Shutdown(ctx) }
