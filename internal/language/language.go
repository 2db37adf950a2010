package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2 primary (3-letter)
	alt3    []string // other 3-letter forms (bibliographic codes, macrolanguage members)
	display string
	words   []string
	cjk     bool
}

var languages = []entry{
	{"en", "eng", nil, "English", []string{"english"}, false},
	{"zh", "zho", []string{"chi", "cmn", "yue"}, "Chinese", []string{"chinese", "mandarin", "cantonese"}, true},
	{"ja", "jpn", nil, "Japanese", []string{"japanese"}, true},
	{"ko", "kor", nil, "Korean", []string{"korean"}, true},
	{"es", "spa", nil, "Spanish", []string{"spanish"}, false},
	{"fr", "fra", []string{"fre"}, "French", []string{"french"}, false},
	{"de", "deu", []string{"ger"}, "German", []string{"german"}, false},
	{"it", "ita", nil, "Italian", []string{"italian"}, false},
	{"pt", "por", nil, "Portuguese", []string{"portuguese"}, false},
	{"ru", "rus", nil, "Russian", []string{"russian"}, false},
	{"vi", "vie", nil, "Vietnamese", []string{"vietnamese"}, false},
	{"th", "tha", nil, "Thai", []string{"thai"}, false},
	{"id", "ind", nil, "Indonesian", []string{"indonesian"}, false},
	{"ms", "msa", []string{"may"}, "Malay", []string{"malay"}, false},
	{"hi", "hin", nil, "Hindi", []string{"hindi"}, false},
	{"ar", "ara", nil, "Arabic", []string{"arabic"}, false},
	{"nl", "nld", []string{"dut"}, "Dutch", []string{"dutch"}, false},
}

var index = func() map[string]*entry {
	m := make(map[string]*entry, len(languages)*4)
	for i := range languages {
		e := &languages[i]
		m[e.code2] = e
		m[e.code3] = e
		for _, alt := range e.alt3 {
			m[alt] = e
		}
		for _, w := range e.words {
			m[w] = e
		}
	}
	return m
}()

// primarySubtag lowercases code and drops region or script subtags
// ("zh-Hant-TW" becomes "zh").
func primarySubtag(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	return code
}

func lookup(code string) *entry {
	code = primarySubtag(code)
	if code == "" {
		return nil
	}
	return index[code]
}

// ToISO2 converts any recognized language code or name to ISO 639-1.
// Unknown 2-letter codes pass through; anything else returns "".
func ToISO2(code string) string {
	if e := lookup(code); e != nil {
		return e.code2
	}
	if primary := primarySubtag(code); len(primary) == 2 {
		return primary
	}
	return ""
}

// DisplayName returns a human-readable language name. It returns "Unknown"
// for empty input and the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsCJK reports whether code names Chinese, Japanese, or Korean.
func IsCJK(code string) bool {
	e := lookup(code)
	return e != nil && e.cjk
}
