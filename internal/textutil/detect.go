package textutil

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// cjkRatioThreshold is the share of CJK letters above which mixed text is
// treated as CJK even when language detection disagrees.
const cjkRatioThreshold = 0.3

// LooksCJK guesses whether text is Chinese, Japanese, or Korean.
func LooksCJK(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	switch whatlanggo.Detect(text).Lang {
	case whatlanggo.Cmn, whatlanggo.Jpn, whatlanggo.Kor:
		return true
	}
	return CJKRatio(text) >= cjkRatioThreshold
}
