package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Buckets de latencia en milisegundos.
var latencyBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500}

// Metrics agrupa los collectors del servicio sobre un registry propio.
// Todos los metodos aceptan receptor nil.
type Metrics struct {
	registry        *prometheus.Registry
	requestTotal    *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	predictions     *prometheus.CounterVec
	unknownCategory *prometheus.CounterVec
	logins          *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screening_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"route", "method", "status"},
		),
		requestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screening_request_latency_ms",
				Help:    "Request latency in milliseconds",
				Buckets: latencyBuckets,
			},
			[]string{"route"},
		),
		predictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screening_predictions_total",
				Help: "Predictions served by class",
			},
			[]string{"class"},
		),
		unknownCategory: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screening_unknown_category_total",
				Help: "Submitted categorical values missing from the encoder vocabulary",
			},
			[]string{"field"},
		),
		logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screening_logins_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (m *Metrics) ObserveRequest(route, method string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(route).Observe(float64(latency.Milliseconds()))
}

func (m *Metrics) ObservePrediction(positive bool) {
	if m == nil {
		return
	}
	class := "0"
	if positive {
		class = "1"
	}
	m.predictions.WithLabelValues(class).Inc()
}

func (m *Metrics) ObserveUnknownCategory(field string) {
	if m == nil {
		return
	}
	m.unknownCategory.WithLabelValues(field).Inc()
}

func (m *Metrics) ObserveLogin(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
