package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/amoylab/rentboard/internal/common/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedRoute labels requests that hit no route so paths cannot explode cardinality
const unmatchedRoute = "unmatched"

// Metrics is safe to use as a nil pointer, in which case nothing is recorded
type Metrics struct {
	registry        *prometheus.Registry
	namespace       string
	httpReqCnt      *prometheus.CounterVec
	httpDur         *prometheus.HistogramVec
	httpInfl        *prometheus.GaugeVec
	listingsCreated *prometheus.CounterVec
	earningsCnt     prometheus.Counter
	partialWrites   prometheus.Counter
	imagesUploaded  *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
}

func New(cfg config.MetricsConfig) *Metrics {
	ns := cfg.Namespace
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	buckets := cfg.Buckets
	if len(buckets) == 0 {
		buckets = prometheus.DefBuckets
	}

	httpReqCnt := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "http_requests_total"}, []string{"method", "route", "status"})
	httpDur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: ns, Name: "http_request_duration_seconds", Buckets: buckets}, []string{"method", "route", "status"})
	httpInfl := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: ns, Name: "http_requests_inflight"}, []string{"route"})
	r.MustRegister(httpReqCnt, httpDur, httpInfl)

	listingsCreated := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "listings_created_total"}, []string{"status"})
	earningsCnt := prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: "earnings_recorded_total"})
	partialWrites := prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: "partial_writes_total"})
	imagesUploaded := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "images_uploaded_total"}, []string{"result"})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: ns, Name: "listing_cache_lookups_total"}, []string{"result"})
	r.MustRegister(listingsCreated, earningsCnt, partialWrites, imagesUploaded, cacheLookups)

	return &Metrics{
		registry:        r,
		namespace:       ns,
		httpReqCnt:      httpReqCnt,
		httpDur:         httpDur,
		httpInfl:        httpInfl,
		listingsCreated: listingsCreated,
		earningsCnt:     earningsCnt,
		partialWrites:   partialWrites,
		imagesUploaded:  imagesUploaded,
		cacheLookups:    cacheLookups,
	}
}

func (m *Metrics) ListingCreated(status string) {
	if m == nil {
		return
	}
	m.listingsCreated.WithLabelValues(status).Inc()
}

func (m *Metrics) EarningRecorded() {
	if m == nil {
		return
	}
	m.earningsCnt.Inc()
}

func (m *Metrics) PartialWrite() {
	if m == nil {
		return
	}
	m.partialWrites.Inc()
}

func (m *Metrics) ImagesUploaded(n int, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.imagesUploaded.WithLabelValues(result).Add(float64(n))
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.httpInfl.WithLabelValues(route).Inc()
		start := time.Now()
		c.Next()
		status := httpStatus(c.Writer.Status())
		m.httpReqCnt.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpDur.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpInfl.WithLabelValues(route).Dec()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func httpStatus(code int) string { return strconv.Itoa(code) }
