package repository

import (
	"flightlookup-service/pkg/logger"
	"flightlookup-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func testMetrics() *metrics.Metrics {
	return metrics.NewMetricsWithRegistry("test", prometheus.NewRegistry())
}

func testLogger() logger.Logger {
	return logger.NewNopLogger()
}
