package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Vocabulary is a controlled set of known occupation strings. When supplied,
// occupation extraction prefers an exact vocabulary match over greedy
// capture, which keeps OCR noise out of the occupation field. A Vocabulary
// is immutable after construction and safe to share across concurrent
// extractions.
type Vocabulary struct {
	pattern *regexp.Regexp
	terms   []string
}

// NewVocabulary builds a vocabulary from occupation terms. Terms are
// lowercased and deduplicated; matching is case-insensitive on whole words.
// Returns nil for an empty term list, which extraction treats as "no
// vocabulary supplied".
func NewVocabulary(terms []string) *Vocabulary {
	seen := make(map[string]struct{}, len(terms))
	cleaned := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		cleaned = append(cleaned, t)
	}
	if len(cleaned) == 0 {
		return nil
	}

	// Longer terms first so "carriage maker" wins over "maker" when both
	// start at the same position.
	sorted := make([]string, len(cleaned))
	copy(sorted, cleaned)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	quoted := make([]string, len(sorted))
	for i, t := range sorted {
		quoted[i] = regexp.QuoteMeta(t)
	}
	pattern := regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)

	return &Vocabulary{pattern: pattern, terms: cleaned}
}

// Terms returns the normalized vocabulary terms in their original order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Match finds the leftmost vocabulary occurrence in text. It returns the
// canonical (lowercase) term and the matched bounds, or ok=false when no
// term occurs.
func (v *Vocabulary) Match(text string) (term string, start, end int, ok bool) {
	if v == nil {
		return "", 0, 0, false
	}
	loc := v.pattern.FindStringIndex(text)
	if loc == nil {
		return "", 0, 0, false
	}
	return strings.ToLower(text[loc[0]:loc[1]]), loc[0], loc[1], true
}
