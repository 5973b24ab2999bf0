package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mvoloshin/sortlab/tracker"
)

var (
	// Prometheus metrics for the most recent run, labeled by algorithm
	promMetrics = struct {
		runsTotal       *prometheus.CounterVec
		inputSize       *prometheus.GaugeVec
		comparisons     *prometheus.GaugeVec
		swaps           *prometheus.GaugeVec
		reads           *prometheus.GaugeVec
		writes          *prometheus.GaugeVec
		memoryAccesses  *prometheus.GaugeVec
		maxAuxSpace     *prometheus.GaugeVec
		cacheHitRatio   *prometheus.GaugeVec
		branchPredict   *prometheus.GaugeVec
		sequentialRatio *prometheus.GaugeVec
		executionTime   *prometheus.GaugeVec
		timelineDropped *prometheus.GaugeVec
	}{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sortlab_runs_total",
			Help: "Completed sorting runs",
		}, []string{"algorithm"}),
		inputSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sortlab_input_size",
			Help: "Element count of the last run",
		}, []string{"algorithm"}),
		comparisons: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sortlab_comparisons",
			Help: "Comparisons in the last run",
		}, []string{"algorithm"}),
		swaps: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sortlab_swaps",
			Help: "Swaps in the last run",
		}, []string{"algorithm"}),
		reads: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sortlab_reads",
			Help: "Array reads in the last run",
		}, []string{"algorithm"}),
		writes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sortlab_writes",
			Help: "Array writes in the last run",
		}, []string{"algorithm"}),
		memoryAccesses: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sortlab_memory_accesses",
			Help: "Total tracked memory accesses in the last run",
		}, []string{"algorithm"}),
		maxAuxSpace: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sortlab_max_auxiliary_space",
			Help: "Peak auxiliary space in elements for the last run",
		}, []string{"algorithm"}),
		cacheHitRatio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sortlab_cache_hit_ratio",
			Help: "Simulated cache hit ratio of the last run",
		}, []string{"algorithm"}),
		branchPredict: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sortlab_branch_predictability",
			Help: "Fraction of repeated comparison outcomes in the last run",
		}, []string{"algorithm"}),
		sequentialRatio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sortlab_sequential_access_ratio",
			Help: "Fraction of sequential accesses in the last run",
		}, []string{"algorithm"}),
		executionTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sortlab_execution_time_seconds",
			Help: "Tracked execution time of the last run",
		}, []string{"algorithm"}),
		timelineDropped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sortlab_timeline_dropped",
			Help: "Step records dropped by the bounded timeline in the last run",
		}, []string{"algorithm"}),
	}
)

func initPrometheusMetrics() {
	prometheus.MustRegister(
		promMetrics.runsTotal,
		promMetrics.inputSize,
		promMetrics.comparisons,
		promMetrics.swaps,
		promMetrics.reads,
		promMetrics.writes,
		promMetrics.memoryAccesses,
		promMetrics.maxAuxSpace,
		promMetrics.cacheHitRatio,
		promMetrics.branchPredict,
		promMetrics.sequentialRatio,
		promMetrics.executionTime,
		promMetrics.timelineDropped,
	)
}

func updatePrometheusMetrics(algorithm string, n int, rep *tracker.Report) {
	m := rep.Metrics
	promMetrics.runsTotal.WithLabelValues(algorithm).Inc()
	promMetrics.inputSize.WithLabelValues(algorithm).Set(float64(n))
	promMetrics.comparisons.WithLabelValues(algorithm).Set(float64(m.Comparisons))
	promMetrics.swaps.WithLabelValues(algorithm).Set(float64(m.Swaps))
	promMetrics.reads.WithLabelValues(algorithm).Set(float64(m.Reads))
	promMetrics.writes.WithLabelValues(algorithm).Set(float64(m.Writes))
	promMetrics.memoryAccesses.WithLabelValues(algorithm).Set(float64(m.MemoryAccesses))
	promMetrics.maxAuxSpace.WithLabelValues(algorithm).Set(float64(m.MaxAuxiliarySpace))
	promMetrics.cacheHitRatio.WithLabelValues(algorithm).Set(rep.CacheHitRatio)
	promMetrics.branchPredict.WithLabelValues(algorithm).Set(rep.BranchPredictability)
	promMetrics.sequentialRatio.WithLabelValues(algorithm).Set(rep.SequentialAccessRatio)
	promMetrics.executionTime.WithLabelValues(algorithm).Set(rep.ExecutionTime.Seconds())
	promMetrics.timelineDropped.WithLabelValues(algorithm).Set(float64(rep.TimelineDropped))
}
