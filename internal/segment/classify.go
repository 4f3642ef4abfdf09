// Package segment reconstructs directory entries from flat OCR line output.
//
// Scanned city-directory pages come back from OCR as a stream of physical
// lines: entries wrap when long, and section headers, page titles, and
// degraded page-break markers are interleaved with real content. This
// package classifies each line and folds continuation lines back into the
// entry they belong to.
package segment

import (
	"fmt"
	"regexp"
	"strings"
)

// LineClass is the classification of a single OCR line.
type LineClass int

const (
	// ClassEntryStart marks a line that begins a new directory entry
	// ("Surname, Firstname ...").
	ClassEntryStart LineClass = iota

	// ClassContinuation marks a wrapped line belonging to the previous entry.
	ClassContinuation

	// ClassNoise marks page furniture: breaks, headers, section dividers.
	ClassNoise
)

// String returns a human-readable class name.
func (c LineClass) String() string {
	switch c {
	case ClassEntryStart:
		return "entry_start"
	case ClassContinuation:
		return "continuation"
	case ClassNoise:
		return "noise"
	default:
		return "unknown"
	}
}

// entryStartPattern matches the typographic convention for a new record:
// a capitalized word token immediately followed by a comma. Single capital
// letters never match (those are section dividers).
var entryStartPattern = regexp.MustCompile(`^[A-Z][A-Za-z'\x60-]+,`)

// DefaultNoisePatterns are the built-in noise matchers. Directory formats
// vary, so callers can extend or replace these via NewClassifier.
var DefaultNoisePatterns = []string{
	`^[-–—=:oO0.]{2,}$`, // page-break markers, incl. OCR-degraded "—:o:—"
	`^[A-Z][A-Z. ]+$`,   // all-caps section headers ("ST. ANTHONY.")
	`^[A-Z]$`,           // single capital letter section divider
}

// DefaultPageTitles are literal page-title prefixes skipped during
// segmentation.
var DefaultPageTitles = []string{
	"CITY DIRECTORY",
}

// Classifier classifies OCR lines. It is stateless and safe for concurrent
// use.
type Classifier struct {
	noise  []*regexp.Regexp
	titles []string
}

// NewClassifier builds a classifier from noise patterns and literal
// page-title prefixes. Empty slices fall back to the defaults.
func NewClassifier(noisePatterns, pageTitles []string) (*Classifier, error) {
	if len(noisePatterns) == 0 {
		noisePatterns = DefaultNoisePatterns
	}
	if len(pageTitles) == 0 {
		pageTitles = DefaultPageTitles
	}

	compiled := make([]*regexp.Regexp, 0, len(noisePatterns))
	for _, p := range noisePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid noise pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}

	return &Classifier{noise: compiled, titles: pageTitles}, nil
}

// DefaultClassifier returns a classifier with the built-in noise vocabulary.
func DefaultClassifier() *Classifier {
	c, err := NewClassifier(nil, nil)
	if err != nil {
		// Default patterns are compile-checked by tests.
		panic(err)
	}
	return c
}

// Classify classifies a single line. The line is expected to be trimmed of
// surrounding whitespace; untrimmed input is trimmed first. Empty lines are
// noise. Classification is conservative: merging two records downstream is
// recoverable, splitting one record in two is not, so anything that is not
// clearly noise or a clear entry start is a continuation.
func (c *Classifier) Classify(line string) LineClass {
	line = strings.TrimSpace(line)
	if line == "" {
		return ClassNoise
	}

	for _, title := range c.titles {
		if strings.HasPrefix(line, title) {
			return ClassNoise
		}
	}
	for _, re := range c.noise {
		if re.MatchString(line) {
			return ClassNoise
		}
	}

	if entryStartPattern.MatchString(line) {
		return ClassEntryStart
	}
	return ClassContinuation
}
