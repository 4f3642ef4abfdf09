package metrics

import (
	"testing"
	"time"

	"github.com/jackzampolin/citydir/internal/providers"
)

func TestRecorder_RecordOCRCall(t *testing.T) {
	r := NewRecorder()

	r.RecordOCRCall(RecordOpts{ScanID: "s1", ItemKey: "page_0001"}, "mistral", &providers.OCRResult{
		Success:       true,
		CostUSD:       0.0012,
		ExecutionTime: 2 * time.Second,
	})
	r.RecordOCRCall(RecordOpts{ScanID: "s1", ItemKey: "page_0002"}, "mistral", &providers.OCRResult{
		Success:      false,
		ErrorMessage: "timeout",
	})
	r.RecordOCRCall(RecordOpts{}, "mistral", nil) // ignored

	metrics := r.List()
	if len(metrics) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(metrics))
	}
	if metrics[0].Stage != "ocr" || metrics[0].Provider != "mistral" {
		t.Errorf("unexpected first metric: %+v", metrics[0])
	}
	if metrics[0].CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if metrics[1].ErrorType != "ocr_error" {
		t.Errorf("ErrorType = %q, want ocr_error", metrics[1].ErrorType)
	}
}

func TestRecorder_Summary(t *testing.T) {
	r := NewRecorder()

	r.RecordOCRCall(RecordOpts{ItemKey: "page_0001"}, "mistral", &providers.OCRResult{
		Success:       true,
		CostUSD:       0.0012,
		ExecutionTime: 2 * time.Second,
	})
	r.RecordExtraction(RecordOpts{ItemKey: "page_0001"}, 10, 8, 2, 50*time.Millisecond)
	r.RecordError(RecordOpts{ItemKey: "page_0002", Stage: "ocr"}, "mistral", "ocr_error", time.Second)

	s := r.Summary()
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.SuccessCount != 2 || s.ErrorCount != 1 {
		t.Errorf("success/error = %d/%d, want 2/1", s.SuccessCount, s.ErrorCount)
	}
	if s.TotalCostUSD != 0.0012 {
		t.Errorf("TotalCostUSD = %f", s.TotalCostUSD)
	}
	if s.EntriesFound != 10 || s.EntriesExtracted != 8 || s.EntriesDropped != 2 {
		t.Errorf("entries = %d/%d/%d, want 10/8/2", s.EntriesFound, s.EntriesExtracted, s.EntriesDropped)
	}
}

func TestRecorder_Grouping(t *testing.T) {
	r := NewRecorder()

	r.RecordOCRCall(RecordOpts{ItemKey: "page_0001"}, "mistral", &providers.OCRResult{Success: true, CostUSD: 0.001})
	r.RecordOCRCall(RecordOpts{ItemKey: "page_0002"}, "tesseract", &providers.OCRResult{Success: true})
	r.RecordExtraction(RecordOpts{ItemKey: "page_0001"}, 5, 5, 0, time.Millisecond)

	byStage := r.ByStage()
	if len(byStage) != 2 {
		t.Fatalf("expected 2 stages, got %v", SortedKeys(byStage))
	}
	if byStage["ocr"].Count != 2 {
		t.Errorf("ocr count = %d, want 2", byStage["ocr"].Count)
	}
	if byStage["extract"].EntriesExtracted != 5 {
		t.Errorf("extract entries = %d, want 5", byStage["extract"].EntriesExtracted)
	}

	byProvider := r.ByProvider()
	keys := SortedKeys(byProvider)
	if len(keys) != 2 || keys[0] != "mistral" || keys[1] != "tesseract" {
		t.Errorf("providers = %v, want [mistral tesseract]", keys)
	}
}
