package caret

// TextInput is a single editable field within a block: either a native
// form control or a contenteditable-like element. SetCursor and
// GetOffsetInInput both branch on IsNative, mirroring the two distinct
// platform code paths the spec describes.
type TextInput interface {
	Text() string
	IsNative() bool
}

// CursorHost installs caret/selection changes into the platform for a
// given input, through whichever of the two mechanisms IsNative selects.
type CursorHost interface {
	// SetNativeSelection sets selectionStart/selectionEnd on a native
	// input.
	SetNativeSelection(input TextInput, start, end int)
	// InstallRange creates and installs a platform range spanning
	// [start, end) of a contenteditable-like input.
	InstallRange(input TextInput, start, end int)
}

// SetCursor places a collapsed caret at offset within input, clamped to
// the input's current text length.
func SetCursor(host CursorHost, input TextInput, offset int) {
	SetSelection(host, input, offset, offset)
}

// SetSelection places a (possibly non-collapsed) selection [start, end)
// within input, clamped to the input's current text length, dispatching
// through the native or contenteditable path as IsNative reports.
func SetSelection(host CursorHost, input TextInput, start, end int) {
	if host == nil || input == nil {
		return
	}
	text := input.Text()
	start = ClampOffset(text, start)
	end = ClampOffset(text, end)

	if input.IsNative() {
		host.SetNativeSelection(input, start, end)
		return
	}
	host.InstallRange(input, start, end)
}

// GetOffsetInInput returns the caret offset within input implied by pos:
// the end offset when useEnd is true, the start offset otherwise. The
// result is clamped to the input's current text length so it stays safe
// to use even after the text has since changed.
func GetOffsetInInput(input TextInput, pos Position, useEnd bool) int {
	if input == nil {
		return 0
	}
	offset := pos.Offset
	if useEnd {
		offset = pos.EndOffset
	}
	return ClampOffset(input.Text(), offset)
}
