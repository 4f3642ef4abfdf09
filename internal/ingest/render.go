package ingest

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// PageExtractRequest describes one page render work unit.
type PageExtractRequest struct {
	PDFPath   string // Source PDF
	PageNum   int    // Page within the PDF (1-indexed)
	OutputNum int    // Output page number across all parts
	OutputDir string // Destination directory
}

// renderPage renders a single page from a PDF using pdftoppm (poppler-utils).
// pdftoppm renders the page correctly, unlike pdfcpu.ExtractImagesFile which
// extracts embedded image objects whose internal numbering may not match
// page order.
func renderPage(ctx context.Context, req PageExtractRequest) (string, error) {
	// Check for cancellation
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	// Create temp directory for output
	tmpDir, err := os.MkdirTemp("", "citydir-page-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// Output prefix for pdftoppm
	outputPrefix := filepath.Join(tmpDir, "page")

	// Run pdftoppm to render the page
	// -png: output PNG format
	// -f N: first page to render
	// -l N: last page to render
	// -r 300: resolution in DPI (matches reasonable quality for OCR)
	// -singlefile: don't add page number suffix (we handle naming ourselves)
	pageStr := fmt.Sprintf("%d", req.PageNum)
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", "300",
		"-singlefile",
		req.PDFPath,
		outputPrefix,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output))
	}

	// pdftoppm with -singlefile creates: <prefix>.png
	srcPath := outputPrefix + ".png"
	if _, err := os.Stat(srcPath); err != nil {
		return "", fmt.Errorf("pdftoppm did not create expected output: %w", err)
	}

	// Read the rendered image
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to read rendered image: %w", err)
	}

	// Write to destination with sequential naming
	dstPath := filepath.Join(req.OutputDir, fmt.Sprintf("page_%04d.png", req.OutputNum))
	if err := os.WriteFile(dstPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write page image: %w", err)
	}

	return dstPath, nil
}
