package utils

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// DecodeName decodes a fixed-width, NUL-padded UTF-16LE name field.
// Anything after the first NUL code unit is padding (or garbage from a longer, older name).
func DecodeName(raw []byte) string {
	end := len(raw) &^ 1
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			end = i
			break
		}
	}
	out, err := utf16le.NewDecoder().Bytes(raw[:end])
	if err != nil {
		return ""
	}
	return string(out)
}

// EncodeName is the inverse of DecodeName.  It reports false if the name does not fit.
func EncodeName(name string, dst []byte) bool {
	enc, err := utf16le.NewEncoder().Bytes([]byte(name))
	if err != nil || len(enc) > len(dst) {
		return false
	}
	clear(dst)
	copy(dst, enc)
	return true
}

func IsAllZero(bs []byte) bool {
	return len(bytes.TrimLeft(bs, "\x00")) == 0
}
