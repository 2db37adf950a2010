package textutil

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// DecodeToUTF8 converts transcript or script bytes to UTF-8. Valid UTF-8 is
// returned as-is (minus a byte order mark); anything else is sniffed with
// chardet and transcoded.
func DecodeToUTF8(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	if utf8.Valid(data) {
		return bytes.TrimPrefix(data, utf8BOM), nil
	}

	best, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}
	if strings.EqualFold(best.Charset, "UTF-8") {
		return bytes.TrimPrefix(data, utf8BOM), nil
	}

	enc, err := lookupEncoding(best.Charset)
	if err != nil {
		return nil, err
	}
	transformed, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", best.Charset, err)
	}
	return bytes.TrimPrefix(transformed, utf8BOM), nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	candidates := []string{name, strings.ReplaceAll(name, "-", "")}
	for _, index := range []*ianaindex.Index{ianaindex.IANA, ianaindex.MIME, ianaindex.MIB} {
		for _, candidate := range candidates {
			enc, err := index.Encoding(candidate)
			if err == nil && enc != nil {
				return enc, nil
			}
		}
	}
	return nil, fmt.Errorf("unsupported charset %q", name)
}
