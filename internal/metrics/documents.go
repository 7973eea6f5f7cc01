package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	documentsStored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docdex",
			Name:      "documents_stored_total",
			Help:      "Documents written to the store, labeled created/updated",
		},
		[]string{"outcome"},
	)

	documentFields = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docdex",
			Name:      "document_fields",
			Help:      "Field entries per stored document",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
		},
	)
)

// RegisterDocumentMetrics registers document counters. Called once from
// the composition root; no init() so tests stay registry-clean.
func RegisterDocumentMetrics() {
	prometheus.MustRegister(documentsStored)
	prometheus.MustRegister(documentFields)
}

// ObserveDocumentStored records one stored document.
func ObserveDocumentStored(created bool, fieldCount int) {
	outcome := "updated"
	if created {
		outcome = "created"
	}
	documentsStored.WithLabelValues(outcome).Inc()
	documentFields.Observe(float64(fieldCount))
}
