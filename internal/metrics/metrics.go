// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration records HTTP request latency by method, chi route pattern and status.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "picboard_http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	ImagesStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "picboard_images_stored_total",
		Help: "Total number of uploaded images written to storage",
	})

	// ImageDeleteFailures counts best-effort image removals that failed.
	ImageDeleteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "picboard_image_delete_failures_total",
		Help: "Total number of image files that could not be removed from storage",
	})

	ImagesQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "picboard_images_cleanup_queued_total",
		Help: "Total number of image files handed to the cleanup workers",
	})

	// ImagesAbandoned counts files the cleanup workers gave up on after the last attempt.
	ImagesAbandoned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "picboard_images_cleanup_abandoned_total",
		Help: "Total number of image files left in storage after all cleanup attempts",
	})

	// RateLimitErrors counts rate limiter store errors. Requests are let through when this happens.
	RateLimitErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "picboard_rate_limit_errors_total",
		Help: "Total number of rate limiter store errors",
	})

	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "picboard_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter",
	}, []string{"route"})
)
