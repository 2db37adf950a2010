package subtitles

import "testing"

func TestJoinWords(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  string
	}{
		{"latin", []string{"Hello", "world"}, "Hello world"},
		{"punctuation attaches", []string{"Hello", ",", "world", "!"}, "Hello, world!"},
		{"cjk adjacency", []string{"本", "益", "比"}, "本益比"},
		{"cjk then latin", []string{"本益比", "P/E"}, "本益比 P/E"},
		{"cjk punctuation", []string{"好", "。"}, "好。"},
		{"line start punctuation token", []string{"wait", ", then"}, "wait, then"},
		{"trims and skips blanks", []string{"  hi ", "", "  ", "there "}, "hi there"},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinWords(tt.words); got != tt.want {
				t.Errorf("JoinWords(%q) = %q, want %q", tt.words, got, tt.want)
			}
		})
	}
}
