package textutil

import (
	"bytes"
	"testing"
)

func TestDecodeToUTF8PassesThroughUTF8(t *testing.T) {
	in := []byte("本益比 P/E")
	out, err := DecodeToUTF8(in)
	if err != nil {
		t.Fatalf("DecodeToUTF8: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("DecodeToUTF8 = %q, want %q", out, in)
	}
}

func TestDecodeToUTF8StripsBOM(t *testing.T) {
	in := append([]byte{0xef, 0xbb, 0xbf}, []byte(`{"segments":[]}`)...)
	out, err := DecodeToUTF8(in)
	if err != nil {
		t.Fatalf("DecodeToUTF8: %v", err)
	}
	if string(out) != `{"segments":[]}` {
		t.Fatalf("BOM not stripped: %q", out)
	}
}

func TestDecodeToUTF8Empty(t *testing.T) {
	out, err := DecodeToUTF8(nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("DecodeToUTF8(nil) = %q, %v", out, err)
	}
}
