// Package ingest handles city directory scan ingestion from PDF files.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"gopkg.in/yaml.v2"

	"github.com/jackzampolin/citydir/internal/home"
	"github.com/jackzampolin/citydir/internal/svcctx"
)

// Request contains the parameters for ingesting a directory scan.
type Request struct {
	PDFPaths []string     // PDF file paths (will be sorted by numeric suffix)
	Title    string       // Scan title (optional, derived from filename if empty)
	Year     int          // Publication year (optional, detected from pages if zero)
	Logger   *slog.Logger // Optional logger override; defaults to the context services
}

// Manifest describes one ingested scan. It is persisted as scan.yaml in
// the scan directory and is the source of truth for later processing.
type Manifest struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Year      int      `yaml:"year,omitempty"`
	PageCount int      `yaml:"page_count"`
	Sources   []string `yaml:"sources"`
	Status    string   `yaml:"status"`
	CreatedAt string   `yaml:"created_at"`
}

// Ingest extracts page images from PDFs into the home directory and writes
// the scan manifest.
func Ingest(ctx context.Context, homeDir *home.Dir, req Request) (*Manifest, error) {
	log := req.Logger
	if log == nil {
		log = svcctx.LoggerFrom(ctx)
	}
	if log == nil {
		log = slog.Default()
	}

	if len(req.PDFPaths) == 0 {
		return nil, fmt.Errorf("no PDF paths provided")
	}

	// Validate all PDF paths exist
	for _, p := range req.PDFPaths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("PDF not found: %s", p)
		}
	}

	// Sort PDFs by numeric suffix (e.g., scan-1.pdf, scan-2.pdf)
	sortedPaths := sortPDFsByNumber(req.PDFPaths)
	log.Info("starting ingest", "pdfs", len(sortedPaths), "title", req.Title)

	// Derive title from first PDF filename if not provided
	title := req.Title
	if title == "" {
		title = deriveTitle(sortedPaths[0])
	}

	scanID := uuid.New().String()

	if err := homeDir.EnsurePageImagesDir(scanID); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	outDir := homeDir.PageImagesDir(scanID)

	// Extract images from all PDFs
	pageCount := 0
	for i, pdfPath := range sortedPaths {
		log.Debug("extracting PDF", "file", filepath.Base(pdfPath), "part", i+1, "of", len(sortedPaths))
		count, err := extractImages(ctx, pdfPath, outDir, pageCount)
		if err != nil {
			// Clean up on failure
			os.RemoveAll(homeDir.ScanDir(scanID))
			return nil, fmt.Errorf("failed to extract images from %s: %w", pdfPath, err)
		}
		log.Debug("extracted pages", "count", count, "total", pageCount+count)
		pageCount += count
	}

	if pageCount == 0 {
		os.RemoveAll(homeDir.ScanDir(scanID))
		return nil, fmt.Errorf("no images extracted from PDFs")
	}

	manifest := &Manifest{
		ID:        scanID,
		Title:     title,
		Year:      req.Year,
		PageCount: pageCount,
		Sources:   sortedPaths,
		Status:    "ingested",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := WriteManifest(homeDir, manifest); err != nil {
		os.RemoveAll(homeDir.ScanDir(scanID))
		return nil, err
	}

	log.Info("ingest complete", "scan_id", scanID, "pages", pageCount)

	return manifest, nil
}

// WriteManifest persists a scan manifest to the home directory.
func WriteManifest(homeDir *home.Dir, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(homeDir.ManifestPath(m.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a scan manifest from the home directory.
func LoadManifest(homeDir *home.Dir, scanID string) (*Manifest, error) {
	data, err := os.ReadFile(homeDir.ManifestPath(scanID))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest for scan %s: %w", scanID, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest for scan %s: %w", scanID, err)
	}
	return &m, nil
}

// ListScans returns manifests for every scan in the home directory,
// ordered by creation time.
func ListScans(homeDir *home.Dir) ([]*Manifest, error) {
	entries, err := os.ReadDir(homeDir.ScansPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read scans directory: %w", err)
	}

	var manifests []*Manifest
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m, err := LoadManifest(homeDir, e.Name())
		if err != nil {
			continue
		}
		manifests = append(manifests, m)
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].CreatedAt < manifests[j].CreatedAt
	})
	return manifests, nil
}

// extractImages renders all pages from a PDF to the output directory using
// pdftoppm. Returns the number of pages extracted. pageOffset shifts output
// page numbering for multi-part PDFs.
func extractImages(ctx context.Context, pdfPath, outDir string, pageOffset int) (int, error) {
	// Get page count
	f, err := os.Open(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	pageCount, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}

	// Process pages concurrently
	maxWorkers := runtime.NumCPU()

	type result struct {
		pageNum int
		err     error
	}

	results := make(chan result, pageCount)
	sem := make(chan struct{}, maxWorkers)

	for page := 1; page <= pageCount; page++ {
		sem <- struct{}{} // acquire
		go func(pageInPDF int) {
			defer func() { <-sem }() // release

			_, err := renderPage(ctx, PageExtractRequest{
				PDFPath:   pdfPath,
				PageNum:   pageInPDF,
				OutputNum: pageOffset + pageInPDF,
				OutputDir: outDir,
			})
			results <- result{pageNum: pageInPDF, err: err}
		}(page)
	}

	// Collect results
	successCount := 0
	for i := 0; i < pageCount; i++ {
		r := <-results
		if r.err != nil {
			return 0, fmt.Errorf("failed to render page %d: %w", r.pageNum, r.err)
		}
		successCount++
	}

	return successCount, nil
}

// sortPDFsByNumber sorts PDF paths by their numeric suffix.
// e.g., ["scan-2.pdf", "scan-1.pdf", "scan-10.pdf"] -> ["scan-1.pdf", "scan-2.pdf", "scan-10.pdf"]
func sortPDFsByNumber(paths []string) []string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)

	re := regexp.MustCompile(`-(\d+)\.pdf$`)

	sort.Slice(sorted, func(i, j int) bool {
		mi := re.FindStringSubmatch(sorted[i])
		mj := re.FindStringSubmatch(sorted[j])

		// If both have numbers, sort numerically
		if len(mi) > 1 && len(mj) > 1 {
			ni, _ := strconv.Atoi(mi[1])
			nj, _ := strconv.Atoi(mj[1])
			return ni < nj
		}

		// Files without numbers come first
		if len(mi) > 1 {
			return false
		}
		if len(mj) > 1 {
			return true
		}

		// Both without numbers: alphabetical
		return sorted[i] < sorted[j]
	})

	return sorted
}

// deriveTitle extracts a title from a PDF filename.
// e.g., "stillwater-1884.pdf" -> "stillwater-1884"
// e.g., "stillwater-1884-1.pdf" -> "stillwater-1884"
func deriveTitle(pdfPath string) string {
	base := filepath.Base(pdfPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	// Remove part suffix like "-1", "-2" but keep a plausible year
	re := regexp.MustCompile(`-(\d{1,3})$`)
	name = re.ReplaceAllString(name, "")

	return name
}
