package segment

import (
	"strings"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []string
	}{
		{
			name:     "empty input",
			lines:    nil,
			expected: nil,
		},
		{
			name:     "noise only",
			lines:    []string{"ST. ANTHONY.", "B", "----", "   "},
			expected: nil,
		},
		{
			name:  "single entry",
			lines: []string{"Smith, John, laborer, h 123 Main St."},
			expected: []string{
				"Smith, John, laborer, h 123 Main St.",
			},
		},
		{
			name: "multi-line merge",
			lines: []string{
				"Brown, Sam, clerk,",
				"bds 45 Elm St.",
			},
			expected: []string{
				"Brown, Sam, clerk, bds 45 Elm St.",
			},
		},
		{
			name: "noise between continuation does not break entry",
			lines: []string{
				"Brown, Sam, clerk,",
				"----",
				"bds 45 Elm St.",
			},
			expected: []string{
				"Brown, Sam, clerk, bds 45 Elm St.",
			},
		},
		{
			name: "consecutive entry starts stay separate",
			lines: []string{
				"Smith, John, laborer, h 123 Main St.",
				"Jones, Mary, teacher",
			},
			expected: []string{
				"Smith, John, laborer, h 123 Main St.",
				"Jones, Mary, teacher",
			},
		},
		{
			name: "leading continuation starts an entry",
			lines: []string{
				"laborer, h 9 Oak St.",
				"Smith, John, clerk",
			},
			expected: []string{
				"laborer, h 9 Oak St.",
				"Smith, John, clerk",
			},
		},
		{
			name: "full page shape",
			lines: []string{
				"CITY DIRECTORY 1867",
				"ST. ANTHONY.",
				"B",
				"Barber, Wm, baker, h 12 2nd St.",
				"Brown, Sam, clerk,",
				"bds 45 Elm St.",
				"—:o:—",
				"Cole, Henry & Jane, farmer, h 3 River rd.",
			},
			expected: []string{
				"Barber, Wm, baker, h 12 2nd St.",
				"Brown, Sam, clerk, bds 45 Elm St.",
				"Cole, Henry & Jane, farmer, h 3 River rd.",
			},
		},
	}

	s := NewSegmenter(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Segment(tt.lines)
			if len(got) != len(tt.expected) {
				t.Fatalf("blob count: got %d (%v), want %d", len(got), got, len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("blob %d: got %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

// TestSegmentPreservesContent verifies that segmentation never loses or
// reorders non-noise content: joining all blobs reproduces the original
// non-noise lines in order.
func TestSegmentPreservesContent(t *testing.T) {
	lines := []string{
		"ST. ANTHONY.",
		"Adams, Chas, painter,",
		"h 77 Spring St.",
		"B",
		"Baker, Geo, porter, bds 4 Bridge sq.",
		"----",
		"Cook, Jas, lumberman,",
		"works for Acme Mill Co.",
	}

	c := DefaultClassifier()
	var kept []string
	for _, line := range lines {
		if c.Classify(line) != ClassNoise {
			kept = append(kept, strings.TrimSpace(line))
		}
	}

	blobs := NewSegmenter(nil).Segment(lines)
	if got, want := strings.Join(blobs, " "), strings.Join(kept, " "); got != want {
		t.Errorf("content mismatch:\n got %q\nwant %q", got, want)
	}
}
