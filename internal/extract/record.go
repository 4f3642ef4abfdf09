// Package extract parses a single directory-entry blob into a structured
// resident record.
//
// Entries follow the printed convention "Surname, Firstname, occupation,
// h <address>." but a century of typesetting drift and OCR noise means the
// strict shape frequently fails. Extraction therefore runs an ordered list
// of named strategies: a strict whole-entry pattern first, then a tolerant
// comma-split that fills whatever slots it can find. The first strategy to
// produce a minimally valid result wins. Optional fields that cannot be
// located are left absent; only a blob with no recognizable name prefix
// fails outright.
package extract

import (
	"errors"
	"strings"
)

// ErrMalformedEntry reports a blob that does not satisfy even the minimal
// "capitalized word, comma" shape needed to identify a last name. Callers
// drop such blobs and count them; this is never fatal for a page.
var ErrMalformedEntry = errors.New("entry has no recognizable name prefix")

// Residence indicates whether the listed address is the resident's home or
// a boarding place.
type Residence string

const (
	ResidenceHome    Residence = "home"
	ResidenceBoards  Residence = "boards"
	ResidenceUnknown Residence = "unknown"
)

// Record is one resident's structured entry. LastName and FirstName are
// always non-empty on a successfully extracted record; every other field is
// optional and empty when absent. Year is page-level metadata attached by
// the pipeline, not by extraction.
type Record struct {
	LastName     string    `json:"last_name" yaml:"last_name"`
	FirstName    string    `json:"first_name" yaml:"first_name"`
	SpouseName   string    `json:"spouse_name,omitempty" yaml:"spouse_name,omitempty"`
	Occupation   string    `json:"occupation,omitempty" yaml:"occupation,omitempty"`
	Residence    Residence `json:"residence_indicator" yaml:"residence_indicator"`
	HomeAddress  string    `json:"home_address,omitempty" yaml:"home_address,omitempty"`
	BusinessName string    `json:"business_name,omitempty" yaml:"business_name,omitempty"`
	Year         string    `json:"year,omitempty" yaml:"year,omitempty"`
}

// normalizeResidence maps a raw residence-indicator token to its canonical
// value: h/house/res are the resident's own home, bds is a boarding place.
func normalizeResidence(token string) Residence {
	switch strings.ToLower(token) {
	case "bds":
		return ResidenceBoards
	case "h", "house", "res":
		return ResidenceHome
	default:
		return ResidenceUnknown
	}
}
