package metrics

import (
	"sync"
	"time"

	"github.com/jackzampolin/citydir/internal/providers"
)

// Recorder collects metrics for a single run. It is safe for concurrent
// use by page workers.
type Recorder struct {
	mu      sync.Mutex
	metrics []Metric
}

// NewRecorder creates a new metrics recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordOpts provides attribution for a metric recording.
type RecordOpts struct {
	ScanID  string
	Stage   string
	ItemKey string // e.g., "page_0001"
}

// Record appends a single metric.
func (r *Recorder) Record(m Metric) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = append(r.metrics, m)
}

// RecordOCRCall records metrics from an OCR result.
func (r *Recorder) RecordOCRCall(opts RecordOpts, provider string, result *providers.OCRResult) {
	if result == nil {
		return
	}

	m := Metric{
		ScanID:  opts.ScanID,
		Stage:   "ocr",
		ItemKey: opts.ItemKey,

		Provider: provider,

		CostUSD:          result.CostUSD,
		ExecutionSeconds: result.ExecutionTime.Seconds(),

		Success: result.Success,
	}
	if opts.Stage != "" {
		m.Stage = opts.Stage
	}
	if result.ErrorMessage != "" {
		m.ErrorType = "ocr_error"
	}

	r.Record(m)
}

// RecordExtraction records per-page entry accounting.
func (r *Recorder) RecordExtraction(opts RecordOpts, found, extracted, dropped int, duration time.Duration) {
	m := Metric{
		ScanID:  opts.ScanID,
		Stage:   "extract",
		ItemKey: opts.ItemKey,

		EntriesFound:     found,
		EntriesExtracted: extracted,
		EntriesDropped:   dropped,
		ExecutionSeconds: duration.Seconds(),

		Success: true,
	}
	if opts.Stage != "" {
		m.Stage = opts.Stage
	}

	r.Record(m)
}

// RecordError records a failed operation as a metric.
func (r *Recorder) RecordError(opts RecordOpts, provider, errorType string, duration time.Duration) {
	r.Record(Metric{
		ScanID:  opts.ScanID,
		Stage:   opts.Stage,
		ItemKey: opts.ItemKey,

		Provider: provider,

		ExecutionSeconds: duration.Seconds(),

		Success:   false,
		ErrorType: errorType,
	})
}

// List returns a copy of all recorded metrics.
func (r *Recorder) List() []Metric {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Metric, len(r.metrics))
	copy(out, r.metrics)
	return out
}
