package interview_coach

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coach_sessions_active",
		Help: "Currently relayed coaching sessions",
	})

	sessionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_sessions_total",
		Help: "Coaching sessions started",
	})

	clientFrames = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coach_client_frames_total",
		Help: "Client frames received by type",
	}, []string{"type"})

	upstreamEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coach_upstream_events_total",
		Help: "Upstream events handled by kind",
	}, []string{"kind"})

	interruptions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coach_interruptions_total",
		Help: "Responses cancelled because the candidate spoke or asked to interrupt",
	})

	relayErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coach_relay_errors_total",
		Help: "Errors surfaced to clients by kind",
	}, []string{"kind"})

	upstreamConnectDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coach_upstream_connect_seconds",
		Help:    "Time to connect and configure the upstream session",
		Buckets: []float64{0.1, 0.2, 0.5, 1.0, 2.0, 5.0, 10.0},
	})
)
