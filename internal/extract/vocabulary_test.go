package extract

import (
	"reflect"
	"testing"
)

func TestNewVocabularyNormalizes(t *testing.T) {
	v := NewVocabulary([]string{"Laborer", "  clerk ", "laborer", ""})
	if v == nil {
		t.Fatal("expected non-nil vocabulary")
	}
	if got, want := v.Terms(), []string{"laborer", "clerk"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Terms() = %v, want %v", got, want)
	}
}

func TestNewVocabularyEmpty(t *testing.T) {
	if v := NewVocabulary(nil); v != nil {
		t.Errorf("expected nil vocabulary for empty terms, got %+v", v)
	}
	if v := NewVocabulary([]string{"", "  "}); v != nil {
		t.Errorf("expected nil vocabulary for blank terms, got %+v", v)
	}
}

func TestVocabularyMatch(t *testing.T) {
	v := NewVocabulary([]string{"maker", "carriage maker", "clerk"})

	tests := []struct {
		name         string
		text         string
		expectedTerm string
		expectedOK   bool
	}{
		{"simple match", "clerk, h 2 Oak St.", "clerk", true},
		{"case insensitive", "CLERK", "clerk", true},
		{"longest at same position", "carriage maker, h 1 Elm St.", "carriage maker", true},
		{"leftmost wins", "clerk and carriage maker", "clerk", true},
		{"whole words only", "clerks union", "", false},
		{"no match", "blacksmith", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _, _, ok := v.Match(tt.text)
			if ok != tt.expectedOK || term != tt.expectedTerm {
				t.Errorf("Match(%q) = (%q, %v), want (%q, %v)",
					tt.text, term, ok, tt.expectedTerm, tt.expectedOK)
			}
		})
	}
}

func TestVocabularyMatchNilReceiver(t *testing.T) {
	var v *Vocabulary
	if _, _, _, ok := v.Match("clerk"); ok {
		t.Error("nil vocabulary should never match")
	}
}
