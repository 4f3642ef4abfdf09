package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackzampolin/citydir/internal/extract"
	"github.com/jackzampolin/citydir/internal/hocr"
	"github.com/jackzampolin/citydir/internal/home"
	"github.com/jackzampolin/citydir/internal/ingest"
	"github.com/jackzampolin/citydir/internal/metrics"
	"github.com/jackzampolin/citydir/internal/preprocess"
	"github.com/jackzampolin/citydir/internal/providers"
	"github.com/jackzampolin/citydir/internal/svcctx"
	"github.com/jackzampolin/citydir/internal/worker"
)

// Runner processes an ingested scan end to end: preprocess each page image,
// OCR it with the first provider that succeeds, then run the text pipeline
// and collect records.
type Runner struct {
	Home     *home.Dir
	Registry *providers.Registry
	Metrics  *metrics.Recorder
	Logger   *slog.Logger

	// Providers is the ordered OCR provider preference. Each page tries
	// them in order until one succeeds.
	Providers []string

	// Workers bounds page concurrency (0 uses runtime.NumCPU via the pool).
	Workers int

	// Preprocess tunes image preparation before OCR.
	Preprocess preprocess.Options

	// MinLineConfidence drops hOCR lines below this mean word confidence.
	MinLineConfidence float64

	// Page carries the text-pipeline options (classifier, vocabulary).
	// Its Year field is overridden by the scan-level year.
	Page Options
}

// NewRunner builds a Runner from the services attached to ctx. Fields the
// service bundle does not cover (provider order, worker count, page
// options) are set by the caller.
func NewRunner(ctx context.Context) *Runner {
	return &Runner{
		Home:     svcctx.HomeFrom(ctx),
		Registry: svcctx.RegistryFrom(ctx),
		Metrics:  svcctx.MetricsFrom(ctx),
		Logger:   svcctx.LoggerFrom(ctx),
	}
}

// PageFailure records a page that could not be processed.
type PageFailure struct {
	PageNum int    `json:"page_num" yaml:"page_num"`
	Error   string `json:"error" yaml:"error"`
}

// RunResult is the outcome of processing a whole scan.
type RunResult struct {
	ScanID   string           `json:"scan_id" yaml:"scan_id"`
	Year     string           `json:"year,omitempty" yaml:"year,omitempty"`
	Pages    int              `json:"pages" yaml:"pages"`
	Records  []extract.Record `json:"records" yaml:"records"`
	Summary  Summary          `json:"summary" yaml:"summary"`
	Failures []PageFailure    `json:"failures,omitempty" yaml:"failures,omitempty"`
	CostUSD  float64          `json:"cost_usd" yaml:"cost_usd"`
}

// Run processes every page of the scan and returns records in page order.
// Individual page failures are collected, not fatal; Run errors only when
// the scan itself cannot be loaded or no provider is usable.
func (r *Runner) Run(ctx context.Context, scanID string) (*RunResult, error) {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}

	manifest, err := ingest.LoadManifest(r.Home, scanID)
	if err != nil {
		return nil, err
	}
	if len(r.Providers) == 0 {
		return nil, fmt.Errorf("no OCR providers configured")
	}
	for _, name := range r.Providers {
		if _, _, err := r.Registry.Get(name); err != nil {
			return nil, err
		}
	}

	if err := r.Home.EnsurePageTextDir(scanID); err != nil {
		return nil, fmt.Errorf("failed to create text directory: %w", err)
	}

	year := r.resolveYear(ctx, manifest, log)
	log.Info("processing scan", "scan_id", scanID, "pages", manifest.PageCount, "year", year)

	pool := worker.New(worker.Config{
		Name:        "process",
		Logger:      log,
		WorkerCount: r.Workers,
	})

	pageResults := pool.Run(ctx, 1, manifest.PageCount, func(ctx context.Context, pageNum int) (any, error) {
		return r.processPage(ctx, scanID, pageNum, year)
	})

	result := &RunResult{ScanID: scanID, Year: year, Pages: manifest.PageCount}
	for _, pr := range pageResults {
		if pr.Err != nil {
			result.Failures = append(result.Failures, PageFailure{
				PageNum: pr.PageNum,
				Error:   pr.Err.Error(),
			})
			continue
		}
		page := pr.Output.(*PageResult)
		result.Records = append(result.Records, page.Records...)
		result.Summary.EntriesFound += page.Summary.EntriesFound
		result.Summary.EntriesExtracted += page.Summary.EntriesExtracted
		result.Summary.EntriesDropped += page.Summary.EntriesDropped
	}

	if r.Metrics != nil {
		result.CostUSD = r.Metrics.Summary().TotalCostUSD
	}

	log.Info("scan complete",
		"scan_id", scanID,
		"records", len(result.Records),
		"dropped", result.Summary.EntriesDropped,
		"failed_pages", len(result.Failures))

	return result, nil
}

// processPage runs preprocess, OCR, and the text pipeline for one page.
func (r *Runner) processPage(ctx context.Context, scanID string, pageNum int, year string) (*PageResult, error) {
	imagePath := r.Home.PageImagePath(scanID, pageNum)
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read page image: %w", err)
	}

	prepared, err := preprocess.Prepare(raw, r.Preprocess)
	if err != nil {
		return nil, fmt.Errorf("failed to preprocess page %d: %w", pageNum, err)
	}

	ocrResult, err := r.ocrPage(ctx, prepared, pageNum)
	if err != nil {
		return nil, err
	}

	// Persist OCR output alongside the scan for inspection and re-runs.
	itemKey := fmt.Sprintf("page_%04d", pageNum)
	if werr := os.WriteFile(r.Home.PageTextPath(scanID, pageNum), []byte(ocrResult.Text), 0o644); werr != nil {
		return nil, fmt.Errorf("failed to write OCR text: %w", werr)
	}
	if ocrResult.HOCR != "" {
		if werr := os.WriteFile(r.Home.PageHOCRPath(scanID, pageNum), []byte(ocrResult.HOCR), 0o644); werr != nil {
			return nil, fmt.Errorf("failed to write hOCR markup: %w", werr)
		}
	}

	lines := r.pageLines(ocrResult)

	opts := r.Page
	opts.Year = year
	opts.Logger = r.Logger

	start := time.Now()
	page, err := ProcessPage(lines, opts)
	if err != nil {
		return nil, err
	}
	if r.Metrics != nil {
		r.Metrics.RecordExtraction(
			metrics.RecordOpts{ScanID: scanID, ItemKey: itemKey},
			page.Summary.EntriesFound,
			page.Summary.EntriesExtracted,
			page.Summary.EntriesDropped,
			time.Since(start),
		)
	}
	return page, nil
}

// ocrPage tries each configured provider in order and returns the first
// successful result.
func (r *Runner) ocrPage(ctx context.Context, image []byte, pageNum int) (*providers.OCRResult, error) {
	itemKey := fmt.Sprintf("page_%04d", pageNum)

	var lastErr error
	for _, name := range r.Providers {
		provider, limiter, err := r.Registry.Get(name)
		if err != nil {
			lastErr = err
			continue
		}

		result, err := providers.ProcessWithRetry(ctx, provider, limiter, image, pageNum)
		if r.Metrics != nil {
			r.Metrics.RecordOCRCall(metrics.RecordOpts{ItemKey: itemKey}, provider.Name(), result)
		}
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", name, err)
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}
		return result, nil
	}
	return nil, fmt.Errorf("all OCR providers failed for page %d: %w", pageNum, lastErr)
}

// pageLines converts an OCR result to ordered page lines, preferring hOCR
// when the provider produced it.
func (r *Runner) pageLines(result *providers.OCRResult) []string {
	if result.HOCR != "" {
		lines, err := hocr.Texts(result.HOCR, hocr.Options{MinConfidence: r.MinLineConfidence})
		if err == nil && len(lines) > 0 {
			return lines
		}
	}
	return strings.Split(result.Text, "\n")
}

// resolveYear picks the scan-level year: manifest first, then OCR of the
// first page's header strip.
func (r *Runner) resolveYear(ctx context.Context, manifest *ingest.Manifest, log *slog.Logger) string {
	if manifest.Year != 0 {
		return strconv.Itoa(manifest.Year)
	}

	raw, err := os.ReadFile(r.Home.PageImagePath(manifest.ID, 1))
	if err != nil {
		return ""
	}
	header, err := preprocess.HeaderRegion(raw)
	if err != nil {
		return ""
	}

	result, err := r.ocrPage(ctx, header, 1)
	if err != nil {
		log.Debug("header year detection failed", "error", err)
		return ""
	}
	return extract.DetectYear(result.Text)
}
