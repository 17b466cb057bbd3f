package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metizcare_http_requests_total",
			Help: "Total de requests HTTP por ruta y status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metizcare_http_request_duration_seconds",
			Help:    "Latencia de requests HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metizcare_recommendations_total",
			Help: "Productos recomendados por superficie y tipo (matched/backfilled)",
		},
		[]string{"path", "kind"},
	)

	QuizEnhancements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metizcare_quiz_enhancements_total",
			Help: "Resultado del enriquecimiento con LLM del analisis del quiz",
		},
		[]string{"result"},
	)

	FaceServiceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metizcare_face_service_duration_seconds",
			Help:    "Latencia del servicio externo de analisis facial",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "metizcare_circuit_breaker_state",
			Help: "Estado del circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metizcare_circuit_breaker_requests_total",
			Help: "Requests a traves del circuit breaker por resultado",
		},
		[]string{"name", "result"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metizcare_rate_limited_total",
			Help: "Requests rechazados por rate limit",
		},
		[]string{"scope"},
	)
)

// RecordHTTPRequest registra una request terminada.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordRecommendations cuenta productos recomendados separando los de relleno.
func RecordRecommendations(path string, matched, backfilled int) {
	if matched > 0 {
		Recommendations.WithLabelValues(path, "matched").Add(float64(matched))
	}
	if backfilled > 0 {
		Recommendations.WithLabelValues(path, "backfilled").Add(float64(backfilled))
	}
}
