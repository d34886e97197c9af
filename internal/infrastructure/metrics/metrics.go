package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the HTTP and business collectors of the service.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPInflight        *prometheus.GaugeVec

	OrdersCreated  prometheus.Counter
	ImagesUploaded *prometheus.CounterVec
	PdfsGenerated  *prometheus.CounterVec
	CacheFallback  prometheus.Gauge
}

// New registers every collector on a fresh registry, so tests can build
// as many instances as they like.
func New() (*Metrics, error) {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		HTTPInflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "In-flight HTTP requests by method and route",
		}, []string{"method", "path"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shop_orders_created_total",
			Help: "Orders created from carts",
		}),
		ImagesUploaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_images_uploaded_total",
			Help: "Uploaded images by image type",
		}, []string{"type"}),
		PdfsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shop_pdfs_generated_total",
			Help: "Generated PDF documents by kind",
		}, []string{"kind"}),
		CacheFallback: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "shop_cache_memory_fallback",
			Help: "1 when the in-memory cache replaces Redis",
		}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal, m.HTTPRequestDuration, m.HTTPInflight,
		m.OrdersCreated, m.ImagesUploaded, m.PdfsGenerated, m.CacheFallback,
	} {
		if err := registerCollector(reg, c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func registerCollector(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return err
	}
	return nil
}
