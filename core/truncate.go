package core

import (
	"unicode/utf8"

	"github.com/huangsam/docdiff/schema"
)

// DefaultMaxLength is the per-group rendering bound in code points.
const DefaultMaxLength = 500

// Truncate bounds text to maxLength code points. Shown never exceeds maxLength;
// the truncation marker is added by Truncation.Display. TotalLength always reports
// the full code point count so callers never need to re-scan the original text.
// A non-positive maxLength yields an empty shown string marked as truncated.
func Truncate(text string, maxLength int) schema.Truncation {
	total := utf8.RuneCountInString(text)
	if maxLength <= 0 {
		return schema.Truncation{Shown: "", Truncated: true, TotalLength: total}
	}
	if total <= maxLength {
		return schema.Truncation{Shown: text, Truncated: false, TotalLength: total}
	}

	// Walk to the byte offset of the maxLength-th rune so multi-byte characters stay intact.
	cut := 0
	for range maxLength {
		_, size := utf8.DecodeRuneInString(text[cut:])
		cut += size
	}
	return schema.Truncation{
		Shown:       text[:cut],
		Truncated:   true,
		TotalLength: total,
	}
}
