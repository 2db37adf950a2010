package textutil

import "testing"

func TestIsCJK(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'本', true},
		{'の', true},
		{'カ', true},
		{'한', true},
		{'。', true},
		{'，', true},
		{'a', false},
		{'7', false},
		{'é', false},
		{',', false},
	}
	for _, tt := range tests {
		if got := IsCJK(tt.r); got != tt.want {
			t.Errorf("IsCJK(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestIsPunctOnly(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{",", true},
		{"...", true},
		{"?!", true},
		{"。", true},
		{")", true},
		{"”", true},
		{"」", true},
		{"\"", false},
		{"&", false},
		{"(", false},
		{"“", false},
		{"", false},
		{"a.", false},
		{"5", false},
	}
	for _, tt := range tests {
		if got := IsPunctOnly(tt.in); got != tt.want {
			t.Errorf("IsPunctOnly(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEndsSentence(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"done.", true},
		{"really?", true},
		{"好。", true},
		{"Stop!\"", true},
		{"(see above.)", true},
		{"comma,", false},
		{"word", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := EndsSentence(tt.in); got != tt.want {
			t.Errorf("EndsSentence(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStartsWithLineStartPunct(t *testing.T) {
	if !StartsWithLineStartPunct(", and") {
		t.Fatal("expected comma to be line-start punctuation")
	}
	if !StartsWithLineStartPunct("、次") {
		t.Fatal("expected ideographic comma to be line-start punctuation")
	}
	if StartsWithLineStartPunct("and") {
		t.Fatal("plain word reported as punctuation")
	}
	if StartsWithLineStartPunct("") {
		t.Fatal("empty string reported as punctuation")
	}
}

func TestCJKRatio(t *testing.T) {
	if got := CJKRatio("hello"); got != 0 {
		t.Fatalf("CJKRatio(latin) = %v, want 0", got)
	}
	if got := CJKRatio("本益比"); got != 1 {
		t.Fatalf("CJKRatio(han) = %v, want 1", got)
	}
	if got := CJKRatio("本益比PE"); got != 0.6 {
		t.Fatalf("CJKRatio(mixed) = %v, want 0.6", got)
	}
	if got := CJKRatio("123 !!"); got != 0 {
		t.Fatalf("CJKRatio(no letters) = %v, want 0", got)
	}
}
