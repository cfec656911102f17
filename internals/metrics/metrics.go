package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "anggotaku"

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	TapIns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "tapins_total", Help: "Tap-in attempts by outcome (new|repeat)",
	}, []string{"outcome"})
	PointsCredited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "points_credited_total", Help: "Points credited to members by source",
	}, []string{"source"})
	PointsRedeemed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "points_redeemed_total", Help: "Points redeemed by members",
	})
	Grades = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "grades_total", Help: "Grades saved by kind (simple|aspects)",
	}, []string{"kind"})
	PinsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "pins_generated_total", Help: "PIN generate calls by result (created|existing)",
	}, []string{"result"})
	PinVerifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "pin_verifications_total", Help: "PIN verify calls by result (verified|unknown)",
	}, []string{"result"})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequests, HTTPDuration,
		TapIns, PointsCredited, PointsRedeemed, Grades,
		PinsGenerated, PinVerifications, DBPing,
	)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

func ObserveRequest(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
