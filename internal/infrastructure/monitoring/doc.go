/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the design
backend, tracking HTTP requests, tool executions, vision backend calls,
component store calls and system metrics.

# Features

- HTTP request metrics (latency, throughput)
- Tool execution metrics (duration, outcome)
- Vision backend call metrics (latency, outcome per model)
- Component store call metrics
- Session and WebSocket connection metrics
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.RecordToolExecution("screens.generate", true, duration)

	// Time operations
	timer := monitoring.NewTimer(metrics, "dna.analyze")
	// ... perform operation ...
	timer.Stop(true)

# Metrics Endpoint

Each collector owns its registry, so exposition goes through it:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	handler := promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})
	router.GET("/metrics", gin.WrapH(handler))
*/
package monitoring
