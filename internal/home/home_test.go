package home

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		d, err := New("/tmp/citydir-test")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if d.Path() != "/tmp/citydir-test" {
			t.Errorf("Path() = %q", d.Path())
		}
	})

	t.Run("default path", func(t *testing.T) {
		d, err := New("")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if !strings.HasSuffix(d.Path(), DefaultDirName) {
			t.Errorf("Path() = %q, want %s suffix", d.Path(), DefaultDirName)
		}
	})
}

func TestEnsureExists(t *testing.T) {
	root := filepath.Join(t.TempDir(), "citydir")
	d, err := New(root)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if d.Exists() {
		t.Error("Exists() = true before EnsureExists")
	}

	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}

	if !d.Exists() {
		t.Error("Exists() = false after EnsureExists")
	}
	for _, dir := range []string{d.ScansPath(), d.ExportsDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("expected %s to exist: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestScanPaths(t *testing.T) {
	d, _ := New("/home/u/.citydir")

	if got := d.ScanDir("abc"); got != "/home/u/.citydir/scans/abc" {
		t.Errorf("ScanDir() = %q", got)
	}
	if got := d.PageImagePath("abc", 7); got != "/home/u/.citydir/scans/abc/pages/page_0007.png" {
		t.Errorf("PageImagePath() = %q", got)
	}
	if got := d.PageTextPath("abc", 7); got != "/home/u/.citydir/scans/abc/text/page_0007.txt" {
		t.Errorf("PageTextPath() = %q", got)
	}
	if got := d.PageHOCRPath("abc", 7); got != "/home/u/.citydir/scans/abc/text/page_0007.hocr" {
		t.Errorf("PageHOCRPath() = %q", got)
	}
	if got := d.ManifestPath("abc"); got != "/home/u/.citydir/scans/abc/scan.yaml" {
		t.Errorf("ManifestPath() = %q", got)
	}
	if got := d.ExportPath("abc", "csv"); got != "/home/u/.citydir/exports/abc.csv" {
		t.Errorf("ExportPath() = %q", got)
	}

	paths := d.PageImagePaths("abc", 3)
	if len(paths) != 3 {
		t.Fatalf("PageImagePaths() len = %d, want 3", len(paths))
	}
	if paths[0] != d.PageImagePath("abc", 1) || paths[2] != d.PageImagePath("abc", 3) {
		t.Errorf("PageImagePaths() = %v", paths)
	}
}

func TestConfigPath(t *testing.T) {
	root := t.TempDir()
	d, _ := New(root)

	if d.ConfigExists() {
		t.Error("ConfigExists() = true with no config file")
	}

	if err := os.WriteFile(d.ConfigPath(), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if !d.ConfigExists() {
		t.Error("ConfigExists() = false after writing config")
	}
}
