package rng

import "github.com/VictoriaMetrics/metrics"

var (
	generateCalls  = metrics.NewCounter("maxrng_generate_calls_total")
	generateFailed = metrics.NewCounter("maxrng_generate_failed_total")
	generatedBytes = metrics.NewCounter("maxrng_generated_bytes_total")
)
