package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"mapify/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

// Metrics считает запросы по шаблону маршрута mux, а не по сырому пути.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := "unmatched"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statsSource interface {
	GetSystemStats(ctx context.Context) (*models.SystemStats, error)
}

// StoreCollector отдаёт число пользователей и мест как gauges.
type StoreCollector struct {
	stats  statsSource
	users  *prometheus.Desc
	places *prometheus.Desc
}

func NewStoreCollector(stats statsSource) *StoreCollector {
	return &StoreCollector{
		stats:  stats,
		users:  prometheus.NewDesc("mapify_users_total", "Registered users", nil, nil),
		places: prometheus.NewDesc("mapify_places_total", "Stored places", nil, nil),
	}
}

func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.users
	ch <- c.places
}

func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s, err := c.stats.GetSystemStats(ctx)
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.users, err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.users, prometheus.GaugeValue, float64(s.TotalUsers))
	ch <- prometheus.MustNewConstMetric(c.places, prometheus.GaugeValue, float64(s.TotalPlaces))
}
