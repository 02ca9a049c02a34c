package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels of the write counters.
const (
	resultSaved   = "saved"
	resultInvalid = "invalid"
	resultFailed  = "failed"
)

type metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	submissions *prometheus.CounterVec
	saves       *prometheus.CounterVec
	rows        prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "survey_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"method", "route"}),
		submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_submissions_total",
			Help: "Survey form submissions by result",
		}, []string{"result"}),
		saves: f.NewCounterVec(prometheus.CounterOpts{
			Name: "survey_saves_total",
			Help: "Dataset overwrites from the editor or API by result",
		}, []string{"result"}),
		rows: f.NewGauge(prometheus.GaugeOpts{
			Name: "survey_responses",
			Help: "Rows in the survey file at the last load",
		}),
	}
}
