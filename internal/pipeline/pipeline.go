// Package pipeline glues segmentation and field extraction together for one
// page of OCR output. No parsing logic lives here: the pipeline attaches
// page-level metadata, isolates per-entry failures, and reports diagnostic
// counts.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackzampolin/citydir/internal/extract"
	"github.com/jackzampolin/citydir/internal/segment"
)

// ErrEmptyPage reports a page with no usable OCR lines. Unlike a malformed
// entry this is a hard failure for the page: the pipeline does not guess a
// year or fabricate entries from nothing.
var ErrEmptyPage = errors.New("page has no OCR lines")

// Options configures one page run. The zero value uses the default noise
// vocabulary, no occupation vocabulary, and year detection from the page
// text.
type Options struct {
	// Classifier overrides the default line classifier (configurable noise
	// vocabulary). Nil uses segment.DefaultClassifier.
	Classifier *segment.Classifier

	// Vocabulary biases occupation extraction toward known values. May be
	// nil. Read-only and safe to share across concurrent page runs.
	Vocabulary *extract.Vocabulary

	// Year is the page-level year supplied by the header-detection
	// collaborator. When empty, the first plausible year token found in the
	// page text is used instead.
	Year string

	// Logger receives per-entry drop diagnostics. Nil uses slog.Default.
	Logger *slog.Logger
}

// Summary counts what happened to a page's entries.
type Summary struct {
	EntriesFound     int `json:"entries_found" yaml:"entries_found"`
	EntriesExtracted int `json:"entries_extracted" yaml:"entries_extracted"`
	EntriesDropped   int `json:"entries_dropped" yaml:"entries_dropped"`
}

// PageResult is the outcome of processing one page: records in original OCR
// order plus the diagnostic summary. Year is the page-level year attached
// to every record (may be empty when none was found).
type PageResult struct {
	Records []extract.Record `json:"records" yaml:"records"`
	Summary Summary          `json:"summary" yaml:"summary"`
	Year    string           `json:"year,omitempty" yaml:"year,omitempty"`
}

// ProcessPage runs the two-stage pipeline over the ordered OCR lines of one
// page. A malformed blob is dropped and counted, never fatal; the only hard
// failure is an empty page. Each call owns its own state, so independent
// pages may be processed concurrently.
func ProcessPage(lines []string, opts Options) (*PageResult, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	if !hasContent(lines) {
		return nil, ErrEmptyPage
	}

	blobs := segment.NewSegmenter(opts.Classifier).Segment(lines)

	year := opts.Year
	if year == "" {
		year = extract.DetectYear(strings.Join(lines, "\n"))
	}

	extractor := extract.New(opts.Vocabulary)
	result := &PageResult{Year: year}
	result.Summary.EntriesFound = len(blobs)

	for _, blob := range blobs {
		rec, err := extractor.Extract(blob)
		if err != nil {
			if errors.Is(err, extract.ErrMalformedEntry) {
				result.Summary.EntriesDropped++
				log.Debug("dropped malformed entry", "blob", blob)
				continue
			}
			return nil, fmt.Errorf("extract entry: %w", err)
		}
		rec.Year = year
		result.Records = append(result.Records, *rec)
		result.Summary.EntriesExtracted++
	}

	return result, nil
}

// ProcessText is ProcessPage over a raw text block, splitting on newlines.
// Useful for ad-hoc samples and for OCR engines that return one string per
// page.
func ProcessText(text string, opts Options) (*PageResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyPage
	}
	return ProcessPage(strings.Split(text, "\n"), opts)
}

func hasContent(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}
