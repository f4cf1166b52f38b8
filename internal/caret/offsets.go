package caret

import "github.com/rivo/uniseg"

// GraphemeLen returns the number of user-perceived characters (grapheme
// clusters) in s. Combining marks and other multi-rune clusters count as
// one offset unit each, matching what a caret actually steps over.
func GraphemeLen(s string) int {
	count := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		count++
	}
	return count
}

// ClampOffset constrains offset to [0, GraphemeLen(s)], the fail-soft
// behavior required whenever a stored offset is replayed against text
// that may have since changed length.
func ClampOffset(s string, offset int) int {
	if offset < 0 {
		return 0
	}
	if max := GraphemeLen(s); offset > max {
		return max
	}
	return offset
}

// SubstringByGrapheme returns the slice of s spanning grapheme offsets
// [start, end). Out-of-range inputs are clamped rather than panicking.
func SubstringByGrapheme(s string, start, end int) string {
	start = ClampOffset(s, start)
	end = ClampOffset(s, end)
	if end < start {
		start, end = end, start
	}

	var b []byte
	idx := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		if idx >= start && idx < end {
			b = append(b, gr.Str()...)
		}
		idx++
		if idx >= end {
			break
		}
	}
	return string(b)
}
