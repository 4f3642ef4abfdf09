package extract

import "testing"

func TestDetectSpouse(t *testing.T) {
	tests := []struct {
		name     string
		blob     string
		expected string
	}{
		{"wife of", "Dolan, Michl, laborer, h 9 Oak St. wife of Henry", "Henry"},
		{"wife without of", "Dolan, Michl, wife Mary, h 9 Oak St.", "Mary"},
		{"case insensitive", "WIFE OF SARAH", "SARAH"},
		{"absent", "Smith, John, laborer, h 123 Main St.", ""},
		{"midwife is not a wife clause", "Kelly, Ann, midwife, h 2 Elm St.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSpouse(tt.blob); got != tt.expected {
				t.Errorf("DetectSpouse(%q) = %q, want %q", tt.blob, got, tt.expected)
			}
		})
	}
}

func TestDetectBusiness(t *testing.T) {
	tests := []struct {
		name     string
		blob     string
		expected string
	}{
		{"works for", "Gray, Thos, clerk, works for Acme Mill Co, bds 12 Main St.", "works for Acme Mill Co"},
		{"proprietor", "Nelson, Ole, proprietor Nicollet House, h same", "proprietor Nicollet House"},
		{"office", "Reed, Saml, lawyer, office 2 Bridge sq, h 9 Oak St.", "office 2 Bridge sq"},
		{"absent", "Smith, John, laborer, h 123 Main St.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectBusiness(tt.blob); got != tt.expected {
				t.Errorf("DetectBusiness(%q) = %q, want %q", tt.blob, got, tt.expected)
			}
		})
	}
}

func TestDetectYear(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"directory year", "MINNEAPOLIS CITY DIRECTORY 1867", "1867"},
		{"twentieth century", "printed 1923", "1923"},
		{"first of several", "1867 and again 1901", "1867"},
		{"not a year", "h 1234 Main St era 1776", ""},
		{"embedded digits ignored", "page 18675", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectYear(tt.text); got != tt.expected {
				t.Errorf("DetectYear(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}
