// Package encoding normalizes the text encodings OpenFormats files are
// exported with.
package encoding

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ToUTF8 returns data as UTF-8 text. A UTF-16 or UTF-8 byte order mark is
// honoured and dropped. Input without a BOM that is not valid UTF-8 is read
// as Windows-1252. Trailing NUL padding is removed.
// Returns the original bytes if conversion fails.
func ToUTF8(data []byte) []byte {
	if hasBOM(data) {
		decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		result, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return data
		}
		return TrimNullBytes(result)
	}

	data = TrimNullBytes(data)
	if utf8.Valid(data) {
		return data
	}

	result, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return data
	}
	return result
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(data, []byte{0xFF, 0xFE}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF})
}

// TrimNullBytes removes trailing null bytes from a byte slice.
func TrimNullBytes(data []byte) []byte {
	return bytes.TrimRight(data, "\x00")
}
