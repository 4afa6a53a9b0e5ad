package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements LibraryHooks and CacheHooks with Prometheus
// collectors.
type PrometheusHooks struct {
	builds         *prometheus.CounterVec
	buildDuration  prometheus.Histogram
	assetsBuilt    prometheus.Counter
	instances      *prometheus.CounterVec
	lookupMisses   prometheus.Counter
	cacheRequests  *prometheus.CounterVec
	cacheSetsBytes *prometheus.CounterVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &PrometheusHooks{
		builds: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stagekit_library_builds_total",
				Help: "Total number of asset library constructions",
			},
			[]string{"status"},
		),
		buildDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stagekit_library_build_duration_seconds",
				Help:    "Asset library construction duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		assetsBuilt: f.NewCounter(
			prometheus.CounterOpts{
				Name: "stagekit_library_assets_total",
				Help: "Total number of assets constructed",
			},
		),
		instances: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stagekit_instances_created_total",
				Help: "Total number of instances created by asset kind",
			},
			[]string{"kind"},
		),
		lookupMisses: f.NewCounter(
			prometheus.CounterOpts{
				Name: "stagekit_lookup_misses_total",
				Help: "Total number of lookups for unknown asset ids",
			},
		),
		cacheRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stagekit_cache_requests_total",
				Help: "Total number of cache reads by key type and result",
			},
			[]string{"key_type", "result"},
		),
		cacheSetsBytes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stagekit_cache_written_bytes_total",
				Help: "Total bytes written to the cache by key type",
			},
			[]string{"key_type"},
		),
	}
}

func (h *PrometheusHooks) OnBuildStart(string, int) {}

func (h *PrometheusHooks) OnBuildComplete(_ string, assets int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	h.builds.WithLabelValues(status).Inc()
	h.buildDuration.Observe(d.Seconds())
	if err == nil {
		h.assetsBuilt.Add(float64(assets))
	}
}

func (h *PrometheusHooks) OnInstanceCreate(kind string, _ int) {
	h.instances.WithLabelValues(kind).Inc()
}

func (h *PrometheusHooks) OnLookupMiss(int) {
	h.lookupMisses.Inc()
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheSetsBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ LibraryHooks = (*PrometheusHooks)(nil)
	_ CacheHooks   = (*PrometheusHooks)(nil)
)
