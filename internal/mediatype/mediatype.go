// Package mediatype checks uploaded bytes against their declared media type.
//
// Only a small whitelist is supported; anything else is rejected. The check
// is structural (magic bytes, UTF-8 validity), not an extension lookup, so a
// renamed file does not pass as a different type.
package mediatype

import (
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
)

const (
	TextPlain = "text/plain"
	ImagePNG  = "image/png"
	ImageJPEG = "image/jpeg"
)

var pngSignature = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// Classify reports whether data is structurally consistent with the declared
// media type. Unknown declared types are never trusted.
func Classify(data []byte, declared string) bool {
	normalized, err := Normalize(declared)
	if err != nil {
		return false
	}
	switch normalized {
	case TextPlain:
		return utf8.Valid(data)
	case ImagePNG:
		return isPNG(data)
	case ImageJPEG:
		return isJPEG(data)
	default:
		return false
	}
}

// Normalize parses and canonicalizes a media type string, dropping any
// parameters. An empty input normalizes to the empty string without error.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parsed, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(parsed)), nil
}

// Detect sniffs the media type from magic bytes. It returns the empty string
// when no known signature matches; plain text has no signature and is never
// detected. Used for upload diagnostics, not for acceptance decisions.
func Detect(data []byte) string {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

func isPNG(data []byte) bool {
	if len(data) < len(pngSignature) {
		return false
	}
	for i, b := range pngSignature {
		if data[i] != b {
			return false
		}
	}
	return true
}

func isJPEG(data []byte) bool {
	// Shorter buffers cannot hold both the SOI and EOI markers.
	if len(data) < 4 {
		return false
	}
	return data[0] == 0xff && data[1] == 0xd8 &&
		data[len(data)-2] == 0xff && data[len(data)-1] == 0xd9
}
