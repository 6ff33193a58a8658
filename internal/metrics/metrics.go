// Package metrics holds the Prometheus collectors of an evaluation run.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// Pipeline stages observed by StageDuration.
const (
	StageAggregate  = "aggregate"
	StagePatterns   = "patterns"
	StageIndicators = "indicators"
	StageEvaluate   = "evaluate"
)

// Metrics holds all Prometheus metrics of the feature pipeline. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	BarsTotal        *prometheus.CounterVec   // labels: resolution
	StageDuration    *prometheus.HistogramVec // labels: stage
	PredictionsTotal *prometheus.CounterVec   // labels: predictor, result
	FoldsTotal       *prometheus.CounterVec   // labels: status
	SignalsTotal     *prometheus.CounterVec   // labels: direction
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		BarsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_features_bars_total",
			Help: "Enriched bars produced (by resolution)",
		}, []string{"resolution"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "argo_features_stage_duration_seconds",
			Help:    "Pipeline stage latency per resolution",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"stage"}),
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_features_predictions_total",
			Help: "Predictor invocations (by predictor and result)",
		}, []string{"predictor", "result"}),
		FoldsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_features_walk_forward_folds_total",
			Help: "Walk-forward folds (by status)",
		}, []string{"status"}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "argo_features_signals_total",
			Help: "Signals emitted (by direction)",
		}, []string{"direction"}),
	}

	m.registry.MustRegister(
		m.BarsTotal,
		m.StageDuration,
		m.PredictionsTotal,
		m.FoldsTotal,
		m.SignalsTotal,
	)

	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

// AddBars counts n bars produced at a resolution.
func (m *Metrics) AddBars(resolution, n int) {
	if m == nil {
		return
	}

	m.BarsTotal.WithLabelValues(strconv.Itoa(resolution)).Add(float64(n))
}

// ObserveStage records the duration of a pipeline stage.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}

	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObservePrediction counts one predictor call.
func (m *Metrics) ObservePrediction(predictor string, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}

	m.PredictionsTotal.WithLabelValues(predictor, result).Inc()
}

// ObserveFold counts one walk-forward fold.
func (m *Metrics) ObserveFold(status string) {
	if m == nil {
		return
	}

	m.FoldsTotal.WithLabelValues(status).Inc()
}

// ObserveSignal counts one emitted signal.
func (m *Metrics) ObserveSignal(direction string) {
	if m == nil {
		return
	}

	m.SignalsTotal.WithLabelValues(direction).Inc()
}

// WriteTextfile writes every metric in the text exposition format, for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return errors.New(errors.ErrCodeWriteFailed, "metrics are disabled")
	}

	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to write metrics to %s", path)
	}

	return nil
}
