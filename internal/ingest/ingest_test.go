package ingest

import (
	"context"
	"os"
	"testing"

	"github.com/jackzampolin/citydir/internal/home"
)

func TestSortPDFsByNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "already sorted",
			input:    []string{"scan-1.pdf", "scan-2.pdf", "scan-3.pdf"},
			expected: []string{"scan-1.pdf", "scan-2.pdf", "scan-3.pdf"},
		},
		{
			name:     "reverse order",
			input:    []string{"scan-3.pdf", "scan-2.pdf", "scan-1.pdf"},
			expected: []string{"scan-1.pdf", "scan-2.pdf", "scan-3.pdf"},
		},
		{
			name:     "mixed with double digits",
			input:    []string{"scan-10.pdf", "scan-2.pdf", "scan-1.pdf"},
			expected: []string{"scan-1.pdf", "scan-2.pdf", "scan-10.pdf"},
		},
		{
			name:     "single file without number",
			input:    []string{"scan.pdf"},
			expected: []string{"scan.pdf"},
		},
		{
			name:     "numbered and unnumbered",
			input:    []string{"scan-2.pdf", "scan.pdf", "scan-1.pdf"},
			expected: []string{"scan.pdf", "scan-1.pdf", "scan-2.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sortPDFsByNumber(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("length mismatch: got %d, want %d", len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("index %d: got %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"stillwater-1884.pdf", "stillwater-1884"},
		{"stillwater-1884-1.pdf", "stillwater-1884"},
		{"/some/path/duluth-directory.pdf", "duluth-directory"},
		{"directory.pdf", "directory"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := deriveTitle(tt.input); got != tt.expected {
				t.Errorf("deriveTitle(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestManifestRoundTrip(t *testing.T) {
	homeDir, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}
	if err := homeDir.EnsurePageImagesDir("scan-1"); err != nil {
		t.Fatalf("EnsurePageImagesDir() error = %v", err)
	}

	m := &Manifest{
		ID:        "scan-1",
		Title:     "stillwater-1884",
		Year:      1884,
		PageCount: 12,
		Sources:   []string{"stillwater-1884.pdf"},
		Status:    "ingested",
		CreatedAt: "2026-01-02T03:04:05Z",
	}

	if err := WriteManifest(homeDir, m); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	got, err := LoadManifest(homeDir, "scan-1")
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if got.ID != m.ID || got.Title != m.Title || got.Year != m.Year ||
		got.PageCount != m.PageCount || got.Status != m.Status {
		t.Errorf("LoadManifest() = %+v, want %+v", got, m)
	}
	if len(got.Sources) != 1 || got.Sources[0] != "stillwater-1884.pdf" {
		t.Errorf("Sources = %v", got.Sources)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	homeDir, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}

	if _, err := LoadManifest(homeDir, "no-such-scan"); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestListScans(t *testing.T) {
	homeDir, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}

	t.Run("empty home", func(t *testing.T) {
		scans, err := ListScans(homeDir)
		if err != nil {
			t.Fatalf("ListScans() error = %v", err)
		}
		if len(scans) != 0 {
			t.Errorf("expected no scans, got %d", len(scans))
		}
	})

	t.Run("ordered by creation time", func(t *testing.T) {
		for i, id := range []string{"b-scan", "a-scan"} {
			if err := homeDir.EnsurePageImagesDir(id); err != nil {
				t.Fatalf("EnsurePageImagesDir() error = %v", err)
			}
			m := &Manifest{
				ID:        id,
				Title:     id,
				PageCount: 1,
				Status:    "ingested",
				CreatedAt: []string{"2026-01-01T00:00:00Z", "2026-01-02T00:00:00Z"}[i],
			}
			if err := WriteManifest(homeDir, m); err != nil {
				t.Fatalf("WriteManifest() error = %v", err)
			}
		}

		// Directory without a manifest is skipped.
		if err := os.MkdirAll(homeDir.ScanDir("stray"), 0o755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}

		scans, err := ListScans(homeDir)
		if err != nil {
			t.Fatalf("ListScans() error = %v", err)
		}
		if len(scans) != 2 {
			t.Fatalf("expected 2 scans, got %d", len(scans))
		}
		if scans[0].ID != "b-scan" || scans[1].ID != "a-scan" {
			t.Errorf("unexpected order: %s, %s", scans[0].ID, scans[1].ID)
		}
	})
}

func TestIngestValidation(t *testing.T) {
	homeDir, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New() error = %v", err)
	}

	t.Run("no paths", func(t *testing.T) {
		if _, err := Ingest(context.Background(), homeDir, Request{}); err == nil {
			t.Error("expected error for empty PDF list")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		req := Request{PDFPaths: []string{"/no/such/file.pdf"}}
		if _, err := Ingest(context.Background(), homeDir, req); err == nil {
			t.Error("expected error for missing PDF")
		}
	})
}
