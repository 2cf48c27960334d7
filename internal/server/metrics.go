// Copyright COAZ Digital, 2026. All rights reserved.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instruments for one server instance. Each
// server carries its own registry so restarts and tests never collide on
// duplicate registration.
type metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	chatTotal        *prometheus.CounterVec
	inferenceCalls   prometheus.Counter
	inferenceErrors  prometheus.Counter
	indexedDocuments prometheus.Gauge
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &metrics{registry: reg}

	m.requestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coaz_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.requestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coaz_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.chatTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coaz_chat_answers_total",
			Help: "Chat answers by response type and source",
		},
		[]string{"response_type", "source"},
	)

	m.inferenceCalls = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "coaz_inference_calls_total",
			Help: "Total calls made to the inference backend",
		},
	)

	m.inferenceErrors = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "coaz_inference_errors_total",
			Help: "Inference backend calls that failed",
		},
	)

	m.indexedDocuments = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "coaz_indexed_documents",
			Help: "Number of documents in the current index snapshot",
		},
	)

	return m
}
