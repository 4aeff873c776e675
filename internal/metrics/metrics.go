// Package metrics holds the Prometheus collectors of the readiness service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"readiness/internal/analyzer"
)

const namespace = "readiness"

var (
	// analysesTotal counts completed analyses.
	analysesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Total completed readiness analyses",
	})

	// overallScore tracks the distribution of overall readiness scores.
	overallScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "overall_score",
		Help:      "Distribution of overall readiness scores",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	})

	// ruleFailuresTotal counts failing rule findings.
	// Labels: rule
	ruleFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rule_failures_total",
		Help:      "Total failed rule checks by rule",
	}, []string{"rule"})

	// uploadsTotal counts accepted uploads.
	// Labels: format (csv, json, xlsx)
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total accepted uploads by file format",
	}, []string{"format"})

	// uploadRowsTruncatedTotal counts uploads that exceeded the row cap.
	uploadRowsTruncatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_rows_truncated_total",
		Help:      "Total uploads truncated to the row cap",
	})
)

// RecordAnalysis records a completed report.
func RecordAnalysis(r *analyzer.Report) {
	analysesTotal.Inc()
	overallScore.Observe(float64(r.Scores.Overall))
	for _, f := range r.RuleFindings {
		if !f.OK {
			ruleFailuresTotal.WithLabelValues(string(f.Rule)).Inc()
		}
	}
}

// RecordUpload records an accepted upload.
func RecordUpload(format string, truncated bool) {
	uploadsTotal.WithLabelValues(format).Inc()
	if truncated {
		uploadRowsTruncatedTotal.Inc()
	}
}
