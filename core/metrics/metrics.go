package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "auction_aggregator"

// Metrics groups the collectors recorded by the pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// FetchTotal counts upstream calls by provider and outcome (ok, error).
	FetchTotal *prometheus.CounterVec
	// FetchDuration observes upstream call latency by provider.
	FetchDuration *prometheus.HistogramVec
	// StageRecords holds the record count that left each pipeline stage in the last run.
	StageRecords *prometheus.GaugeVec
	// RowsWritten counts rows handed to the persistence layer by table.
	RowsWritten *prometheus.CounterVec
	// RunsTotal counts pipeline runs by status (success, failed).
	RunsTotal *prometheus.CounterVec
	// RunDuration observes pipeline run duration.
	RunDuration prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total upstream requests",
		}, []string{"provider", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		StageRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_records",
			Help:      "Records produced by each pipeline stage in the last run",
		}, []string{"stage"}),
		RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "rows_written_total",
			Help:      "Rows submitted to the persistence layer",
		}, []string{"table"}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Pipeline runs by status",
		}, []string{"status"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "Pipeline run duration in seconds",
			Buckets:   []float64{10, 30, 60, 120, 300, 600, 1200},
		}),
	}

	collectors := []prometheus.Collector{
		m.FetchTotal,
		m.FetchDuration,
		m.StageRecords,
		m.RowsWritten,
		m.RunsTotal,
		m.RunDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveFetch records one upstream call.
func (m *Metrics) ObserveFetch(provider string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.FetchTotal.WithLabelValues(provider, outcome).Inc()
	m.FetchDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// SetStage records how many records left a stage.
func (m *Metrics) SetStage(stage string, n int) {
	if m == nil {
		return
	}
	m.StageRecords.WithLabelValues(stage).Set(float64(n))
}

// AddRows records rows written to a table.
func (m *Metrics) AddRows(table string, n int) {
	if m == nil {
		return
	}
	m.RowsWritten.WithLabelValues(table).Add(float64(n))
}

// ObserveRun records the outcome of a pipeline run.
func (m *Metrics) ObserveRun(err error, d time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDuration.Observe(d.Seconds())
}
