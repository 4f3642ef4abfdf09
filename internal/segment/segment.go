package segment

import "strings"

// Segmenter folds classified OCR lines into entry blobs. Each call to
// Segment is an independent single forward pass; a Segmenter holds no state
// between calls and is safe for concurrent use across pages.
type Segmenter struct {
	classifier *Classifier
}

// NewSegmenter creates a segmenter using the given classifier. A nil
// classifier uses the default noise vocabulary.
func NewSegmenter(c *Classifier) *Segmenter {
	if c == nil {
		c = DefaultClassifier()
	}
	return &Segmenter{classifier: c}
}

// Segment merges the ordered OCR lines into entry blobs. Noise lines are
// skipped. An entry-start line flushes the open accumulator and seeds a new
// one. Continuation lines append with a single separating space; a
// continuation with no open accumulator starts one, which recovers entries
// whose first line the OCR mangled past recognition.
func (s *Segmenter) Segment(lines []string) []string {
	var blobs []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		blob := strings.TrimSpace(current.String())
		if blob != "" {
			blobs = append(blobs, blob)
		}
		current.Reset()
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		switch s.classifier.Classify(line) {
		case ClassNoise:
			continue
		case ClassEntryStart:
			flush()
			current.WriteString(line)
		case ClassContinuation:
			if current.Len() > 0 {
				current.WriteByte(' ')
			}
			current.WriteString(line)
		}
	}
	flush()

	return blobs
}
