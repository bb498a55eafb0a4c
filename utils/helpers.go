package utils

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// TextField decodes a fixed-size, possibly unterminated C text buffer into an
// owned Go string. Content up to the first NUL (or the full buffer when no
// terminator exists) is kept. Valid UTF-8 passes through unchanged; anything
// else is re-decoded as Latin-1, the usual encoding of legacy EXIF strings.
// The conversion is lossy where necessary and never fails.
func TextField(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	if len(buf) == 0 {
		return ""
	}
	if utf8.Valid(buf) {
		return string(buf)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(buf)
	if err != nil {
		return strings.ToValidUTF8(string(buf), "�")
	}
	return string(out)
}

// DescriptionField decodes like TextField and trims surrounding whitespace,
// which camera firmwares habitually pad descriptions with.
func DescriptionField(buf []byte) string {
	return strings.TrimSpace(TextField(buf))
}

// RefField decodes a single-character reference tag (GPS hemisphere letters
// and the like) into a string, empty when unset.
func RefField(c byte) string {
	if c == 0 {
		return ""
	}
	return string(rune(c))
}

// CloneBytes returns a copy of b (safe for use after the source buffer is released).
func CloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
