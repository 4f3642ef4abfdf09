package extract

import (
	"regexp"
	"strings"
)

// Auxiliary detectors run over the whole blob, independent of which naming
// strategy succeeded. They only ever add optional fields.

var (
	// "wife Mary" or "wife of Mary"
	spousePattern = regexp.MustCompile(`(?i)\bwife(?: of)?\s+([A-Za-z. ]+)`)

	// A clause anchored on a business keyword, up to the next delimiter.
	businessPattern = regexp.MustCompile(`(?i)\b(?:office|works for|proprietor|company|firm)\b[^.,]*`)

	// First plausible 4-digit year.
	yearPattern = regexp.MustCompile(`\b(?:18|19|20)\d{2}\b`)
)

// DetectSpouse returns the spouse name from a "wife [of] <name>" clause, or
// "" when none is present.
func DetectSpouse(blob string) string {
	m := spousePattern.FindStringSubmatch(blob)
	if m == nil {
		return ""
	}
	return strings.Trim(m[1], " .")
}

// DetectBusiness returns the first business clause (office, works for,
// proprietor, company, firm) in the blob, or "" when none is present.
func DetectBusiness(blob string) string {
	return strings.Trim(businessPattern.FindString(blob), " .,")
}

// DetectYear returns the first 4-digit token that looks like a directory
// year (18xx, 19xx, 20xx), or "". The pipeline uses this at page level when
// the header collaborator supplied no year; it is never attached per entry.
func DetectYear(text string) string {
	return yearPattern.FindString(text)
}
