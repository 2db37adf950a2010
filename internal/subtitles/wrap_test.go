package subtitles

import (
	"reflect"
	"testing"
)

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		maxChars     int
		maxLines     int
		want         []string
		wantOverflow bool
	}{
		{
			name:     "fits on one line",
			text:     "short line",
			maxChars: 42, maxLines: 2,
			want: []string{"short line"},
		},
		{
			name:     "balanced split",
			text:     "the quick brown fox jumps over the lazy dog",
			maxChars: 24, maxLines: 2,
			want: []string{"the quick brown fox", "jumps over the lazy dog"},
		},
		{
			name:     "cjk wraps without leading punctuation",
			text:     "一二三四五，六七八九十",
			maxChars: 5, maxLines: 3,
			want: []string{"一二三四", "五，六七八", "九十"},
		},
		{
			name:     "cjk hard wrap",
			text:     "本益比通常在十到十五倍之間",
			maxChars: 10, maxLines: 2,
			want: []string{"本益比通常在十到十五", "倍之間"},
		},
		{
			name:     "single long token overflows onto last line",
			text:     "abcdefghijklmnopqrstuvwxyz",
			maxChars: 5, maxLines: 2,
			want:         []string{"abcde", "fghijklmnopqrstuvwxyz"},
			wantOverflow: true,
		},
		{
			name:     "greedy fill beyond two lines",
			text:     "aaaa bbbb cccc dddd eeee",
			maxChars: 9, maxLines: 3,
			want: []string{"aaaa bbbb", "cccc dddd", "eeee"},
		},
		{
			name:     "empty",
			text:     "   ",
			maxChars: 10, maxLines: 2,
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, overflow := WrapLines(tt.text, tt.maxChars, tt.maxLines)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapLines(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if overflow != tt.wantOverflow {
				t.Errorf("overflow = %v, want %v", overflow, tt.wantOverflow)
			}
		})
	}
}

func TestWrapLinesRejoinsToInput(t *testing.T) {
	inputs := []string{
		"the quick brown fox jumps over the lazy dog",
		"本益比通常在十到十五倍之間，投資人可以參考",
		"We said, in 2024, that P/E ratios near 15 were fair.",
	}
	for _, text := range inputs {
		lines, _ := WrapLines(text, 16, 4)
		if got := JoinLines(lines); got != text {
			t.Errorf("JoinLines(WrapLines(%q)) = %q", text, got)
		}
	}
}
