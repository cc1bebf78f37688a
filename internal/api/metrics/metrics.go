// Package metrics defines and registers all custom Prometheus metrics for the
// casework API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "casework"

// ReportsCreatedTotal counts persisted reports.
// Label:
//   - kind: "REPORT" (text) or "DOCUMENT" (upload)
var ReportsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_created_total",
		Help:      "Total number of reports created, by kind.",
	},
	[]string{"kind"},
)

// DocumentUploadsTotal counts document upload attempts.
// Label:
//   - outcome: "ok", "forbidden", or "error"
var DocumentUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_uploads_total",
		Help:      "Total number of document upload attempts, by outcome.",
	},
	[]string{"outcome"},
)

// OCRFailuresTotal counts OCR passes that failed and degraded to an upload
// without extracted text.
var OCRFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ocr_failures_total",
		Help:      "Total number of OCR extractions that failed (uploads proceed without text).",
	},
)

// TranslationsTotal counts successful report translations.
// Label:
//   - target_lang: the translation target (e.g. "EN-US")
var TranslationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "translations_total",
		Help:      "Total number of successful report translations, by target language.",
	},
	[]string{"target_lang"},
)

// StoredObjectDeletesTotal counts best-effort stored-object deletions run by
// the background cleaner.
// Label:
//   - result: "ok" or "orphaned" (delete failed, reference recorded)
var StoredObjectDeletesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stored_object_deletes_total",
		Help:      "Total number of background stored-object delete attempts, by result.",
	},
	[]string{"result"},
)
