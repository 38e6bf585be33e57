package encoding

import (
	"fmt"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
)

// utf16LE is the fixed-width text encoding of every container string.
// BOMs are neither expected nor stripped: a leading U+FEFF is ordinary text.
var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// DecodeText converts raw UTF-16LE code units into a Go string.
//
// Unpaired surrogates and a trailing odd byte decode to U+FFFD. Callers that need
// byte-exact output keep the raw bytes and only re-encode text that changed.
func DecodeText(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	out, err := utf16LE.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode utf-16le: %w", err)
	}

	return string(out), nil
}

// EncodeText converts a Go string into UTF-16LE code units without a terminator.
func EncodeText(text string) ([]byte, error) {
	if text == "" {
		return []byte{}, nil
	}

	out, err := utf16LE.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode utf-16le: %w", err)
	}

	return out, nil
}

// EncodedLen returns the number of bytes EncodeText produces for text:
// two bytes per UTF-16 code unit.
func EncodedLen(text string) int {
	n := 0
	for _, r := range text {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++ // encoded as U+FFFD
		}
	}

	return n * 2
}
