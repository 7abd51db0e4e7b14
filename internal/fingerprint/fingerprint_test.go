package fingerprint

import (
	"strings"
	"testing"
)

func TestSumIsDeterministic(t *testing.T) {
	data := []byte("the same bytes every time")
	first := Sum(data)
	second := Sum(data)
	if first != second {
		t.Fatalf("digest not deterministic: %s vs %s", first, second)
	}
}

func TestSumIsFixedWidthLowercaseHex(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		[]byte("a"),
		[]byte("hello"),
		[]byte{0x00, 0x00, 0x00},
		[]byte(strings.Repeat("x", 10_000)),
	}
	for _, in := range inputs {
		got := Sum(in)
		if len(got) != 64 {
			t.Fatalf("digest of %d bytes has length %d, want 64", len(in), len(got))
		}
		if got != strings.ToLower(got) {
			t.Fatalf("digest not lowercase: %s", got)
		}
		for _, c := range got {
			if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
				t.Fatalf("digest contains non-hex rune %q: %s", c, got)
			}
		}
	}
}

func TestSumDistinguishesContent(t *testing.T) {
	if Sum([]byte("a")) == Sum([]byte("b")) {
		t.Fatal("distinct content produced identical digests")
	}
}
