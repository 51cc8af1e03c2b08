package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	filesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "complysort_files_processed_total",
		Help: "Total number of files examined by classification runs",
	})
	copiesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "complysort_copies_total",
		Help: "Total number of per-framework file copies performed",
	})
	unmatchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "complysort_unmatched_total",
		Help: "Total number of files left in place with no framework match",
	})
	copyFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "complysort_copy_failures_total",
		Help: "Total number of failed per-framework copy attempts",
	})
	annotateFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "complysort_annotate_failures_total",
		Help: "Total number of failed note-service annotation attempts",
	})
	rollbackReplaysTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "complysort_rollback_replays_total",
		Help: "Total number of rollback instructions replayed",
	})
	rollbackFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "complysort_rollback_failures_total",
		Help: "Total number of rollback instructions that failed to apply",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(
		filesProcessedTotal,
		copiesTotal,
		unmatchedTotal,
		copyFailuresTotal,
		annotateFailuresTotal,
		rollbackReplaysTotal,
		rollbackFailuresTotal,
	)
}

// IncFileProcessed increments the examined-files counter.
func IncFileProcessed() { filesProcessedTotal.Inc() }

// IncCopy increments the per-framework copy counter.
func IncCopy() { copiesTotal.Inc() }

// IncUnmatched increments the unmatched-files counter.
func IncUnmatched() { unmatchedTotal.Inc() }

// IncCopyFailure increments the failed-copy counter.
func IncCopyFailure() { copyFailuresTotal.Inc() }

// IncAnnotateFailure increments the failed-annotation counter.
func IncAnnotateFailure() { annotateFailuresTotal.Inc() }

// IncRollbackReplay increments the replayed-instructions counter.
func IncRollbackReplay() { rollbackReplaysTotal.Inc() }

// IncRollbackFailure increments the failed-rollback-instruction counter.
func IncRollbackFailure() { rollbackFailuresTotal.Inc() }
