package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Whole-entry shape: "Last, First [& Spouse], occupation, h address."
	// All four core slots must be present for the strict tier to succeed.
	strictPattern = regexp.MustCompile(
		`^(?P<last>[A-Z][A-Za-z'\- ]*?),\s*` +
			`(?P<first>[A-Za-z. ]+?)` +
			`(?:\s*(?:&|and)\s+(?P<joined>[A-Za-z. ]+?))?,\s*` +
			`(?P<occupation>[^,]+?),\s*` +
			`(?P<res>(?i:h(?:ouse)?|bds|res))\.?\s+` +
			`(?P<addr>[^.]+?)\.?\s*$`)

	// Surname prefix: the one shape every extractable blob must have.
	// Everything after it is sliced positionally, so degraded punctuation
	// in the rest of the entry never drops it.
	namePrefixPattern = regexp.MustCompile(`^([A-Z][A-Za-z'\- ]*),\s*`)

	// Joined given names: "Henry & Jane" or "Henry and Jane".
	joinedNamePattern = regexp.MustCompile(`\s*(?:&|\band\b)\s+`)

	// Leading run of name-like words.
	givenNamePattern = regexp.MustCompile(`^[A-Za-z.']+(?:\s+[A-Za-z.']+)*`)

	// Residence clause anywhere after the name: indicator token + address
	// up to the next comma or period. Lowercase only, so the "H." in
	// initials like "H. P." is never taken for a house indicator.
	residencePattern = regexp.MustCompile(`\b(h(?:ouse)?|bds|res)\.?\s+([^,.]+)`)
)

// Extractor parses entry blobs into Records. It holds only the optional
// occupation vocabulary and is safe for concurrent use; Extract is a pure
// function of its input.
type Extractor struct {
	vocab *Vocabulary
}

// New creates an extractor. vocab may be nil, in which case occupation
// extraction falls back to greedy up-to-comma capture.
func New(vocab *Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// strategy is one named extraction attempt. Strategies run in order and the
// first to produce a minimally valid record wins; this keeps the
// "try the strict pattern first" heuristic without exception-driven control
// flow.
type strategy struct {
	name string
	run  func(*Extractor, string) (*Record, bool)
}

var strategies = []strategy{
	{name: "strict", run: (*Extractor).strict},
	{name: "tolerant", run: (*Extractor).tolerant},
}

// Extract parses one entry blob. It returns ErrMalformedEntry (wrapped)
// when the blob lacks the minimal name-prefix shape; every other missing
// field is simply left absent on the returned record.
func (e *Extractor) Extract(blob string) (*Record, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return nil, fmt.Errorf("%w: empty blob", ErrMalformedEntry)
	}

	for _, s := range strategies {
		rec, ok := s.run(e, blob)
		if !ok {
			continue
		}

		// Detectors see the whole blob regardless of which strategy won.
		if spouse := DetectSpouse(blob); spouse != "" {
			rec.SpouseName = spouse
		}
		if rec.BusinessName == "" {
			rec.BusinessName = DetectBusiness(blob)
		}
		return rec, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrMalformedEntry, blob)
}

// strict attempts the full entry pattern. Succeeds only when name,
// occupation, residence indicator, and address are all present.
func (e *Extractor) strict(blob string) (*Record, bool) {
	m := strictPattern.FindStringSubmatch(blob)
	if m == nil {
		return nil, false
	}
	groups := subexpMap(strictPattern, m)

	rec := &Record{
		LastName:    strings.TrimSpace(groups["last"]),
		FirstName:   strings.Trim(groups["first"], " ."),
		SpouseName:  strings.Trim(groups["joined"], " ."),
		Occupation:  e.resolveOccupation(groups["occupation"], true),
		Residence:   normalizeResidence(groups["res"]),
		HomeAddress: strings.Trim(groups["addr"], " ,."),
	}
	if rec.LastName == "" || rec.FirstName == "" {
		return nil, false
	}
	return rec, true
}

// tolerant slices the blob into positional slots after the surname prefix.
// Slots that cannot be located are left absent; the only hard requirement
// is the prefix plus a given name.
func (e *Extractor) tolerant(blob string) (*Record, bool) {
	m := namePrefixPattern.FindStringSubmatch(blob)
	if m == nil {
		return nil, false
	}
	rec := &Record{
		LastName:  strings.TrimSpace(m[1]),
		Residence: ResidenceUnknown,
	}
	rest := blob[len(m[0]):]

	// Locate the residence clause first so a missing occupation does not
	// swallow "h 123 Main St" as the occupation slot.
	if loc := residencePattern.FindStringSubmatchIndex(rest); loc != nil {
		rec.Residence = normalizeResidence(rest[loc[2]:loc[3]])
		rec.HomeAddress = strings.Trim(rest[loc[4]:loc[5]], " ,.")
		rest = rest[:loc[0]]
	}

	// A comma normally bounds the given name. OCR often loses it, so fall
	// back to the vocabulary to find where the occupation begins.
	nameRegion, occRegion := rest, ""
	if i := strings.IndexByte(rest, ','); i >= 0 {
		nameRegion, occRegion = rest[:i], rest[i+1:]
	} else if e.vocab != nil {
		if _, start, _, ok := e.vocab.Match(rest); ok {
			nameRegion, occRegion = rest[:start], rest[start:]
		}
	}

	if loc := joinedNamePattern.FindStringIndex(nameRegion); loc != nil {
		joined := strings.TrimSpace(nameRegion[loc[1]:])
		rec.SpouseName = strings.Trim(givenNamePattern.FindString(joined), " .")
		nameRegion = nameRegion[:loc[0]]
	}

	first := givenNamePattern.FindString(strings.TrimSpace(nameRegion))
	rec.FirstName = strings.Trim(first, " .")
	if rec.LastName == "" || rec.FirstName == "" {
		return nil, false
	}

	rec.Occupation = e.resolveOccupation(occRegion, false)
	return rec, true
}

// resolveOccupation extracts the occupation from text following the name.
// With a vocabulary, the leftmost exact vocabulary occurrence wins and is
// returned in its canonical form; without one, everything up to the next
// comma is taken. slotted marks text that the strict pattern already
// isolated to the occupation position: such text is kept verbatim when the
// vocabulary has no match, while an unslotted miss leaves the field absent
// rather than capturing arbitrary trailing noise.
func (e *Extractor) resolveOccupation(text string, slotted bool) string {
	if e.vocab != nil {
		if term, _, _, ok := e.vocab.Match(text); ok {
			return term
		}
		if slotted {
			return strings.Trim(text, " ,.")
		}
		return ""
	}

	if i := strings.IndexByte(text, ','); i >= 0 {
		text = text[:i]
	}
	return strings.Trim(text, " ,.")
}

// subexpMap pairs a pattern's named groups with their submatch values.
func subexpMap(re *regexp.Regexp, match []string) map[string]string {
	groups := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name != "" && i < len(match) {
			groups[name] = match[i]
		}
	}
	return groups
}
