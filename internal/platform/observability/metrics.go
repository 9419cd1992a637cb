package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcome label values.
const (
	StatusOK         = "ok"
	StatusBadRequest = "bad_request"
	StatusUndetected = "undetected"
	StatusError      = "error"
)

// Pipeline stage label values.
const (
	StageSanitize  = "sanitize"
	StageDetect    = "detect"
	StageTranslate = "translate"
	StageStopwords = "stopwords"
	StageClassify  = "classify"
	StagePersist   = "persist"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tweet_classifier_requests_total",
		Help: "Total number of classification requests by detected language and outcome",
	}, []string{"language", "status"})

	StageDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tweet_classifier_stage_duration_seconds",
		Help:    "Duration of each pipeline stage",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"stage"})

	TranslationCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tweet_classifier_translation_calls_total",
		Help: "Calls to the detection/translation backend by operation and status",
	}, []string{"backend", "op", "status"})

	TranslationCircuitState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tweet_classifier_translation_circuit_state",
		Help: "Circuit breaker state for the translation backend (0=closed, 1=half-open, 2=open)",
	}, []string{"backend"})

	LogRowsAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tweet_classifier_log_rows_appended_total",
		Help: "Rows appended to the classification CSV log",
	})

	RelevanceLabels = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tweet_classifier_relevance_labels_total",
		Help: "Predicted relevance labels",
	}, []string{"label"})
)
