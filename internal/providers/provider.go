// Package providers holds the OCR engines the pipeline can call. The text
// core never talks to an engine directly: an OCRProvider turns a page image
// into text (and hOCR markup when the engine supports it), and everything
// downstream is plain string processing.
package providers

import (
	"context"
	"time"
)

// OCRProvider handles image-to-text extraction for one page at a time.
// Implementations are safe for concurrent use; rate limiting and retries
// are applied by the caller via the advertised properties.
type OCRProvider interface {
	// Name returns the provider identifier (e.g., "mistral", "tesseract").
	Name() string

	// ProcessImage extracts text from a page image.
	ProcessImage(ctx context.Context, image []byte, pageNum int) (*OCRResult, error)

	// Rate limiting and retry properties.
	RequestsPerSecond() float64
	MaxRetries() int
	RetryDelayBase() time.Duration
}

// OCRResult is the response from an OCR provider.
type OCRResult struct {
	// Success/content
	Success bool   `json:"success"`
	Text    string `json:"text"`

	// HOCR carries layout-annotated markup when the engine produces it
	// (local Tesseract does); empty otherwise. The hocr package derives
	// confidence-filtered line sequences from it.
	HOCR string `json:"hocr,omitempty"`

	// Metadata from the provider (dimensions, model, etc.)
	Metadata map[string]any `json:"metadata,omitempty"`

	// Cost and timing
	CostUSD       float64       `json:"cost_usd"`
	ExecutionTime time.Duration `json:"execution_time"`

	// Error info
	ErrorMessage string `json:"error_message,omitempty"`
	RetryCount   int    `json:"retry_count"`
}
