package discovery

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"

	"sensefp/internal/fingerprint"
)

const separator = "|"

// Key returns the 8 digit uppercase hexadecimal discovery key for items.
func Key(items []fingerprint.Item) string {
	return fmt.Sprintf("%08X", uint32(hash(Canonical(items))))
}

// ResultKey is Key applied to the fingerprint of r.
func ResultKey(r fingerprint.Result) string {
	return Key(r.Fingerprint)
}

// Same reports whether a and b produce the same discovery key.
func Same(a, b []fingerprint.Item) bool {
	return Key(a) == Key(b)
}

type segment struct {
	word string
	text string
}

// Canonical returns the serialized form the key is computed from.
func Canonical(items []fingerprint.Item) string {
	segments := make([]segment, 0, len(items))
	for _, item := range items {
		word := fingerprint.Key(item.Word)
		segments = append(segments, segment{
			word: word,
			text: word + ":" + formatWeight(item.Weight),
		})
	}
	// Equal words fall back to the full segment so duplicates sort the same
	// way whatever order they arrived in.
	sort.Slice(segments, func(i, j int) bool {
		if segments[i].word != segments[j].word {
			return segments[i].word < segments[j].word
		}
		return segments[i].text < segments[j].text
	})

	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = seg.text
	}
	return strings.Join(parts, separator)
}

// hash folds the UTF-16 code units of s into a wrapping int32.
func hash(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	return h
}
