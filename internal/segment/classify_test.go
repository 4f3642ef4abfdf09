package segment

import "testing"

func TestClassify(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name     string
		line     string
		expected LineClass
	}{
		{"empty line", "", ClassNoise},
		{"whitespace only", "   ", ClassNoise},
		{"page break dashes", "----", ClassNoise},
		{"degraded page break", "—:o:—", ClassNoise},
		{"degraded break with zeros", "—:0:—", ClassNoise},
		{"all caps header", "ST. ANTHONY.", ClassNoise},
		{"all caps header no periods", "MINNEAPOLIS", ClassNoise},
		{"single capital divider", "B", ClassNoise},
		{"page title", "CITY DIRECTORY 1867", ClassNoise},
		{"entry start", "Smith, John, laborer, h 123 Main St.", ClassEntryStart},
		{"entry start short surname", "Orr, James", ClassEntryStart},
		{"hyphenated surname", "Smith-Jones, Mary", ClassEntryStart},
		{"apostrophe surname", "O'Brien, Pat", ClassEntryStart},
		{"continuation address", "bds 45 Elm St.", ClassContinuation},
		{"continuation lowercase", "works for Acme Mill Co.", ClassContinuation},
		{"no comma after name", "Smith John laborer", ClassContinuation},
		{"single capital with comma", "B, something", ClassContinuation},
		{"untrimmed entry start", "  Brown, Sam, clerk,  ", ClassEntryStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.line); got != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.expected)
			}
		})
	}
}

func TestNewClassifierCustomPatterns(t *testing.T) {
	c, err := NewClassifier([]string{`^SKIP$`}, []string{"DIRECTORY OF SAINT PAUL"})
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	if got := c.Classify("SKIP"); got != ClassNoise {
		t.Errorf("custom noise pattern: got %v, want %v", got, ClassNoise)
	}
	if got := c.Classify("DIRECTORY OF SAINT PAUL page 4"); got != ClassNoise {
		t.Errorf("custom page title: got %v, want %v", got, ClassNoise)
	}
	// The built-in dash-run default is replaced, and "----" is no longer a
	// capitalized-word-comma line, so it falls through to continuation.
	if got := c.Classify("----"); got != ClassContinuation {
		t.Errorf("replaced defaults: got %v, want %v", got, ClassContinuation)
	}
}

func TestNewClassifierInvalidPattern(t *testing.T) {
	if _, err := NewClassifier([]string{`[unclosed`}, nil); err == nil {
		t.Fatal("expected error for invalid noise pattern")
	}
}
