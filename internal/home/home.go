package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the citydir home directory.
	DefaultDirName = ".citydir"

	// ScansDirName is the subdirectory holding ingested directory scans.
	ScansDirName = "scans"

	// ExportsDirName is the subdirectory for exported records.
	ExportsDirName = "exports"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// ManifestFileName is the per-scan manifest file name.
	ManifestFileName = "scan.yaml"
)

// Dir represents the citydir home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.citydir).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{d.ScansPath(), d.ExportsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// ScansPath returns the directory holding all scans.
func (d *Dir) ScansPath() string {
	return filepath.Join(d.path, ScansDirName)
}

// ScanDir returns the directory for a single scan.
func (d *Dir) ScanDir(scanID string) string {
	return filepath.Join(d.ScansPath(), scanID)
}

// ManifestPath returns the path to a scan's manifest file.
func (d *Dir) ManifestPath(scanID string) string {
	return filepath.Join(d.ScanDir(scanID), ManifestFileName)
}

// PageImagesDir returns the directory for a scan's page images.
func (d *Dir) PageImagesDir(scanID string) string {
	return filepath.Join(d.ScanDir(scanID), "pages")
}

// PageImagePath returns the path to a specific page image.
// Page numbers are 1-indexed.
func (d *Dir) PageImagePath(scanID string, pageNum int) string {
	return filepath.Join(d.PageImagesDir(scanID), fmt.Sprintf("page_%04d.png", pageNum))
}

// PageImagePaths returns paths for all pages of a scan.
func (d *Dir) PageImagePaths(scanID string, pageCount int) []string {
	paths := make([]string, pageCount)
	for i := 1; i <= pageCount; i++ {
		paths[i-1] = d.PageImagePath(scanID, i)
	}
	return paths
}

// EnsurePageImagesDir creates the page images directory for a scan.
func (d *Dir) EnsurePageImagesDir(scanID string) error {
	return os.MkdirAll(d.PageImagesDir(scanID), 0o755)
}

// PageTextDir returns the directory for a scan's OCR text output.
func (d *Dir) PageTextDir(scanID string) string {
	return filepath.Join(d.ScanDir(scanID), "text")
}

// PageTextPath returns the path to a page's OCR text file.
func (d *Dir) PageTextPath(scanID string, pageNum int) string {
	return filepath.Join(d.PageTextDir(scanID), fmt.Sprintf("page_%04d.txt", pageNum))
}

// PageHOCRPath returns the path to a page's hOCR markup file.
func (d *Dir) PageHOCRPath(scanID string, pageNum int) string {
	return filepath.Join(d.PageTextDir(scanID), fmt.Sprintf("page_%04d.hocr", pageNum))
}

// EnsurePageTextDir creates the OCR text directory for a scan.
func (d *Dir) EnsurePageTextDir(scanID string) error {
	return os.MkdirAll(d.PageTextDir(scanID), 0o755)
}

// ExportsDir returns the directory for exported record files.
func (d *Dir) ExportsDir() string {
	return filepath.Join(d.path, ExportsDirName)
}

// ExportPath returns the path for an exported record file.
func (d *Dir) ExportPath(scanID, format string) string {
	return filepath.Join(d.ExportsDir(), fmt.Sprintf("%s.%s", scanID, format))
}
