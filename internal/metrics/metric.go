// Package metrics provides cost and usage tracking for OCR and extraction
// runs.
package metrics

import "time"

// Metric represents one recorded OCR or extraction operation. Metrics are
// append-only records held in memory for the duration of a run.
type Metric struct {
	// Attribution (for filtering/aggregation)
	ScanID  string `json:"scan_id,omitempty"`
	Stage   string `json:"stage,omitempty"`    // e.g., "ocr", "extract"
	ItemKey string `json:"item_key,omitempty"` // e.g., "page_0001"

	// Provider info
	Provider string `json:"provider,omitempty"`

	// Cost
	CostUSD float64 `json:"cost_usd,omitempty"`

	// Extraction counts
	EntriesFound     int `json:"entries_found,omitempty"`
	EntriesExtracted int `json:"entries_extracted,omitempty"`
	EntriesDropped   int `json:"entries_dropped,omitempty"`

	// Timing
	ExecutionSeconds float64 `json:"execution_seconds,omitempty"`

	// Status
	Success   bool   `json:"success"`
	ErrorType string `json:"error_type,omitempty"`

	// Metadata
	CreatedAt time.Time `json:"created_at,omitempty"`
}
