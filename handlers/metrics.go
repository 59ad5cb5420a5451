package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "traffic_api_predictions_served_total",
		Help: "Total number of predictions served.",
	})
	predictionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "traffic_api_predictions_failed_total",
		Help: "Total number of failed prediction requests.",
	})
	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "traffic_api_prediction_duration_seconds",
		Help:    "Duration of a single model inference.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})
	datasetRowsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "traffic_api_dataset_rows_loaded",
		Help: "Number of rows in the loaded traffic dataset.",
	})
)

// SetDatasetRows publishes the loaded table size; called once after startup.
func SetDatasetRows(n int) {
	datasetRowsLoaded.Set(float64(n))
}
