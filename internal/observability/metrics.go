package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the analysis engine.
type Metrics struct {
	registry      *prometheus.Registry
	ScanRequests  *prometheus.CounterVec
	ScanDuration  *prometheus.HistogramVec
	FilesScanned  prometheus.Counter
	AgentsEnabled *prometheus.CounterVec
	CacheHits     *prometheus.CounterVec
}

// NewMetrics constructs a metrics registry with analysis collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	reqs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agentscope_scans_total",
		Help: "Total analysis runs by outcome",
	}, []string{"outcome"})

	durs := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agentscope_scan_duration_seconds",
		Help:    "Analysis run duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	files := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agentscope_files_scanned_total",
		Help: "Files visited across all analysis runs",
	})

	agents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agentscope_agents_enabled_total",
		Help: "Agent enable decisions by agent identifier",
	}, []string{"agent"})

	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agentscope_report_cache_total",
		Help: "Daemon report cache lookups by result",
	}, []string{"result"})

	reg.MustRegister(reqs, durs, files, agents, cache)

	return &Metrics{
		registry:      reg,
		ScanRequests:  reqs,
		ScanDuration:  durs,
		FilesScanned:  files,
		AgentsEnabled: agents,
		CacheHits:     cache,
	}
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordScan records one analysis run with its duration and file count.
func (m *Metrics) RecordScan(outcome string, duration time.Duration, fileCount int) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.ScanRequests.WithLabelValues(outcome).Inc()
	m.ScanDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	m.FilesScanned.Add(float64(fileCount))
}

// RecordAgentEnabled counts an agent enable decision.
func (m *Metrics) RecordAgentEnabled(agent string) {
	if m == nil {
		return
	}
	if agent == "" {
		agent = "unknown"
	}
	m.AgentsEnabled.WithLabelValues(agent).Inc()
}

// RecordCacheLookup counts a daemon cache hit or miss.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheHits.WithLabelValues(result).Inc()
}
