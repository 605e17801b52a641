package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	questionsTotal       *prometheus.CounterVec
	retrievalHitTotal    *prometheus.CounterVec
	noContextTotal       *prometheus.CounterVec
	toolInvocationsTotal *prometheus.CounterVec
	decisionTotal        *prometheus.CounterVec
	answerDuration       *prometheus.HistogramVec
	retrievedDocs        *prometheus.HistogramVec
	indexRebuildsTotal   *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geoqa",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "geoqa",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "geoqa",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	questionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geoqa",
			Subsystem: "qa",
			Name:      "questions_total",
			Help:      "Total answered questions.",
		},
		[]string{"service"},
	)
	retrievalHitTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geoqa",
			Subsystem: "qa",
			Name:      "retrieval_hit_total",
			Help:      "Total questions answered with at least one citation.",
		},
		[]string{"service"},
	)
	noContextTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geoqa",
			Subsystem: "qa",
			Name:      "no_context_total",
			Help:      "Total questions answered without citations.",
		},
		[]string{"service"},
	)
	toolInvocationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geoqa",
			Subsystem: "qa",
			Name:      "tool_invocations_total",
			Help:      "Total calculation tool invocations by status.",
		},
		[]string{"service", "tool", "status"},
	)
	decisionTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geoqa",
			Subsystem: "qa",
			Name:      "decisions_total",
			Help:      "Total decisions by engine (rules, backend, fallback).",
		},
		[]string{"service", "engine"},
	)
	answerDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "geoqa",
			Subsystem: "qa",
			Name:      "answer_duration_seconds",
			Help:      "End-to-end answer duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	retrievedDocs := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "geoqa",
			Subsystem: "qa",
			Name:      "retrieved_documents",
			Help:      "Distribution of cited documents per answered question.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
		[]string{"service"},
	)
	indexRebuildsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geoqa",
			Subsystem: "index",
			Name:      "rebuilds_total",
			Help:      "Total index rebuilds by status.",
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		questionsTotal,
		retrievalHitTotal,
		noContextTotal,
		toolInvocationsTotal,
		decisionTotal,
		answerDuration,
		retrievedDocs,
		indexRebuildsTotal,
	)

	return &HTTPServerMetrics{
		registry:             registry,
		requestTotal:         requestTotal,
		requestDuration:      requestDuration,
		requestInFlight:      requestInFlight,
		questionsTotal:       questionsTotal,
		retrievalHitTotal:    retrievalHitTotal,
		noContextTotal:       noContextTotal,
		toolInvocationsTotal: toolInvocationsTotal,
		decisionTotal:        decisionTotal,
		answerDuration:       answerDuration,
		retrievedDocs:        retrievedDocs,
		indexRebuildsTotal:   indexRebuildsTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *HTTPServerMetrics) RecordAnswer(service string, citationCount int, duration time.Duration) {
	m.questionsTotal.WithLabelValues(service).Inc()
	m.answerDuration.WithLabelValues(service).Observe(duration.Seconds())
	m.retrievedDocs.WithLabelValues(service).Observe(float64(citationCount))

	if citationCount > 0 {
		m.retrievalHitTotal.WithLabelValues(service).Inc()
		return
	}
	m.noContextTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordToolInvocation(service, tool, status string) {
	if tool == "" {
		tool = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	m.toolInvocationsTotal.WithLabelValues(service, tool, status).Inc()
}

func (m *HTTPServerMetrics) RecordDecision(service, engine string) {
	if engine == "" {
		engine = "unknown"
	}
	m.decisionTotal.WithLabelValues(service, engine).Inc()
}

func (m *HTTPServerMetrics) RecordIndexRebuild(service, status string) {
	if status == "" {
		status = "unknown"
	}
	m.indexRebuildsTotal.WithLabelValues(service, status).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}
