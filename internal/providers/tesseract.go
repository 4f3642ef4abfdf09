package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/otiai10/gosseract/v2"
)

const TesseractName = "tesseract"

// defaultPSMModes are the page segmentation modes swept when none is
// configured. Directory pages are dense single-column text, but degraded
// scans sometimes segment better under a different mode, so the engine
// tries each and keeps the run that recognized the most text.
var defaultPSMModes = []gosseract.PageSegMode{
	gosseract.PSM_AUTO,
	gosseract.PSM_SINGLE_COLUMN,
	gosseract.PSM_SINGLE_BLOCK,
}

// TesseractConfig holds configuration for the local Tesseract engine.
type TesseractConfig struct {
	Languages []string                // trained-data hints, default ["eng"]
	PSMModes  []gosseract.PageSegMode // segmentation modes to sweep
	Variables map[string]string       // raw engine variables (e.g. user_defined_dpi)
}

// TesseractClient implements OCRProvider using a local Tesseract install
// via gosseract. Each ProcessImage call owns its own client, so the
// provider is safe for concurrent pages.
type TesseractClient struct {
	languages []string
	psmModes  []gosseract.PageSegMode
	variables map[string]string
}

// NewTesseractClient creates a local Tesseract OCR provider.
func NewTesseractClient(cfg TesseractConfig) *TesseractClient {
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"eng"}
	}
	if len(cfg.PSMModes) == 0 {
		cfg.PSMModes = defaultPSMModes
	}
	return &TesseractClient{
		languages: cfg.Languages,
		psmModes:  cfg.PSMModes,
		variables: cfg.Variables,
	}
}

// Name returns the provider identifier.
func (c *TesseractClient) Name() string {
	return TesseractName
}

// RequestsPerSecond returns 0: a local engine needs no rate limiting.
func (c *TesseractClient) RequestsPerSecond() float64 {
	return 0
}

// MaxRetries returns 1: local recognition is deterministic, retrying the
// same image cannot help.
func (c *TesseractClient) MaxRetries() int {
	return 1
}

// RetryDelayBase returns the base delay for backoff (unused at 1 retry).
func (c *TesseractClient) RetryDelayBase() time.Duration {
	return 0
}

// ProcessImage recognizes a page image locally, sweeping the configured
// page segmentation modes and keeping the mode that produced the most
// text. The winning run's hOCR markup is included for confidence-filtered
// line derivation.
func (c *TesseractClient) ProcessImage(ctx context.Context, image []byte, pageNum int) (*OCRResult, error) {
	start := time.Now()

	var bestText, bestHOCR string
	var bestMode gosseract.PageSegMode

	for _, mode := range c.psmModes {
		select {
		case <-ctx.Done():
			return &OCRResult{
				Success:       false,
				ErrorMessage:  ctx.Err().Error(),
				ExecutionTime: time.Since(start),
			}, ctx.Err()
		default:
		}

		text, hocrText, err := c.recognize(image, mode)
		if err != nil {
			return &OCRResult{
				Success:       false,
				ErrorMessage:  err.Error(),
				ExecutionTime: time.Since(start),
			}, err
		}
		if len(text) > len(bestText) {
			bestText, bestHOCR, bestMode = text, hocrText, mode
		}
	}

	if bestText == "" {
		err := fmt.Errorf("no text recognized in any segmentation mode")
		return &OCRResult{
			Success:       false,
			ErrorMessage:  err.Error(),
			ExecutionTime: time.Since(start),
		}, err
	}

	return &OCRResult{
		Success: true,
		Text:    bestText,
		HOCR:    bestHOCR,
		Metadata: map[string]any{
			"psm_mode": int(bestMode),
			"page_num": pageNum,
		},
		ExecutionTime: time.Since(start),
	}, nil
}

// recognize runs one Tesseract pass with a fresh client.
func (c *TesseractClient) recognize(image []byte, mode gosseract.PageSegMode) (text, hocrText string, err error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(image); err != nil {
		return "", "", fmt.Errorf("set image: %w", err)
	}
	if err := client.SetLanguage(c.languages...); err != nil {
		return "", "", fmt.Errorf("set languages: %w", err)
	}
	if err := client.SetPageSegMode(mode); err != nil {
		return "", "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	for k, v := range c.variables {
		if err := client.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return "", "", fmt.Errorf("set variable %s: %w", k, err)
		}
	}

	text, err = client.Text()
	if err != nil {
		return "", "", fmt.Errorf("recognize text: %w", err)
	}
	hocrText, err = client.HOCRText()
	if err != nil {
		return "", "", fmt.Errorf("recognize hocr: %w", err)
	}
	return text, hocrText, nil
}

// Verify interface
var _ OCRProvider = (*TesseractClient)(nil)
