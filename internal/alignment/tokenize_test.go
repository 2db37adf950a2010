package alignment

import (
	"reflect"
	"testing"
)

func TestTokenizeScript(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		isCJK bool
		want  []string
	}{
		{
			name:  "cjk keeps acronyms and numbers atomic",
			text:  "本益比P/E可能10到15倍。",
			isCJK: true,
			want:  []string{"本", "益", "比", "P/E", "可", "能", "10", "到", "15", "倍。"},
		},
		{
			name:  "cjk absorbs trailing punctuation",
			text:  "好，走吧！",
			isCJK: true,
			want:  []string{"好,", "走", "吧!"},
		},
		{
			name: "latin words and punctuation",
			text: "Hello, world. It's 2024!",
			want: []string{"Hello", ",", "world", ".", "It's", "2024", "!"},
		},
		{
			name: "accented letters stay in one token",
			text: "café naïve",
			want: []string{"café", "naïve"},
		},
		{
			name: "fullwidth folds to ascii",
			text: "ＰＥ　１５",
			want: []string{"PE", "15"},
		},
		{
			name: "trailing apostrophe is separate",
			text: "dogs' toys",
			want: []string{"dogs", "'", "toys"},
		},
		{
			name: "empty",
			text: "   ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeScript(tt.text, tt.isCJK)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenizeScript(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
