package hocr

import (
	"reflect"
	"testing"
)

const sampleHOCR = `<html>
 <body>
  <div class='ocr_page' id='page_1' title='image "page.png"; bbox 0 0 1240 1754'>
   <div class='ocr_carea' id='block_1_1'>
    <p class='ocr_par' id='par_1_1'>
     <span class='ocr_line' id='line_1_1' title='bbox 36 92 618 133; baseline 0 -10'>
      <span class='ocrx_word' title='bbox 36 92 120 123; x_wconf 96'>Smith,</span>
      <span class='ocrx_word' title='bbox 130 92 200 123; x_wconf 93'>John,</span>
      <span class='ocrx_word' title='bbox 210 92 320 123; x_wconf 91'>laborer,</span>
     </span>
     <span class='ocr_line' id='line_1_2' title='bbox 36 140 618 181'>
      <span class='ocrx_word' title='bbox 36 140 60 171; x_wconf 88'>h</span>
      <span class='ocrx_word' title='bbox 70 140 240 171; x_wconf 90'>123 Main St.</span>
     </span>
     <span class='ocr_line' id='line_1_3' title='bbox 36 188 618 229'>
      <span class='ocrx_word' title='bbox 36 188 140 219; x_wconf 21'>g@rbl3d</span>
     </span>
    </p>
   </div>
  </div>
 </body>
</html>`

func TestLines(t *testing.T) {
	lines, err := Lines(sampleHOCR, Options{})
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}

	if len(lines) != 3 {
		t.Fatalf("line count: got %d, want 3", len(lines))
	}

	expected := []string{
		"Smith, John, laborer,",
		"h 123 Main St.",
		"g@rbl3d",
	}
	for i, l := range lines {
		if l.Text != expected[i] {
			t.Errorf("line %d: got %q, want %q", i, l.Text, expected[i])
		}
		if l.Order != i {
			t.Errorf("line %d order: got %d", i, l.Order)
		}
	}

	// First line averages 96, 93, 91.
	if got := lines[0].Confidence; got < 93.2 || got > 93.4 {
		t.Errorf("line 0 confidence: got %v, want ~93.33", got)
	}
}

func TestLinesConfidenceFilter(t *testing.T) {
	texts, err := Texts(sampleHOCR, Options{MinConfidence: 50})
	if err != nil {
		t.Fatalf("Texts: %v", err)
	}

	expected := []string{
		"Smith, John, laborer,",
		"h 123 Main St.",
	}
	if !reflect.DeepEqual(texts, expected) {
		t.Errorf("filtered texts: got %v, want %v", texts, expected)
	}
}

func TestLinesNoConfidenceKept(t *testing.T) {
	markup := `<div><span class="ocr_line">Jones, Mary, teacher</span></div>`

	lines, err := Lines(markup, Options{MinConfidence: 90})
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("line count: got %d, want 1", len(lines))
	}
	if lines[0].Confidence != -1 {
		t.Errorf("confidence: got %v, want -1", lines[0].Confidence)
	}
}

func TestLinesEmptyMarkup(t *testing.T) {
	lines, err := Lines("", Options{})
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines, got %v", lines)
	}
}
