package fakebg

import (
	"testing"

	"github.com/blockcore/editorcore/internal/caret"
)

type fakeHost struct {
	wrapped        [][]Rect
	extensions     map[int][2]float64
	unwrapCalls    int
	unwrapOK       bool
	lineHeightFn   func(i int) (float64, float64)
	installedStart caret.AnchorPoint
	installedEnd   caret.AnchorPoint
}

func (h *fakeHost) WrapTextNodes(nodes []TextNode) ([][]Rect, caret.AnchorPoint, caret.AnchorPoint) {
	return h.wrapped, caret.AnchorPoint{Offset: -1}, caret.AnchorPoint{Offset: 999}
}

func (h *fakeHost) ApplyExtension(wrapperIndex int, top, bottom float64) {
	if h.extensions == nil {
		h.extensions = make(map[int][2]float64)
	}
	h.extensions[wrapperIndex] = [2]float64{top, bottom}
}

func (h *fakeHost) LineHeight(wrapperIndex int) (float64, float64) {
	if h.lineHeightFn != nil {
		return h.lineHeightFn(wrapperIndex)
	}
	return 20, 16
}

func (h *fakeHost) Unwrap() (caret.AnchorPoint, caret.AnchorPoint, bool) {
	h.unwrapCalls++
	return caret.AnchorPoint{Offset: 1}, caret.AnchorPoint{Offset: 2}, h.unwrapOK
}

func (h *fakeHost) InstallRange(start, end caret.AnchorPoint) {
	h.installedStart, h.installedEnd = start, end
}

func TestSetNoOpOnEmptyNodes(t *testing.T) {
	host := &fakeHost{}
	var s State
	s.Set(host, nil)

	if s.Active() {
		t.Fatalf("expected Set with no nodes to leave state inactive")
	}
}

func TestSetInstallsRangeAndMarksActive(t *testing.T) {
	host := &fakeHost{wrapped: [][]Rect{{{Top: 0, Bottom: 16, Height: 16}}}}
	var s State
	s.Set(host, []TextNode{{Text: "hi", Start: 0, End: 2}})

	if !s.Active() {
		t.Fatalf("expected Set to mark the state active")
	}
	if host.installedStart.Offset != -1 || host.installedEnd.Offset != 999 {
		t.Fatalf("expected saved range to be installed, got %+v %+v", host.installedStart, host.installedEnd)
	}
}

func TestSingleLineGetsSymmetricExtension(t *testing.T) {
	host := &fakeHost{wrapped: [][]Rect{{{Top: 0, Bottom: 16, Height: 16}}}}
	var s State
	s.Set(host, []TextNode{{Text: "hi"}})

	ext := host.extensions[0]
	if ext[0] != 2 || ext[1] != 2 {
		t.Fatalf("expected base extension of (20-16)/2=2 on both edges, got %+v", ext)
	}
}

func TestMultiLineBottomExtensionAccountsForGap(t *testing.T) {
	// Two wrappers, each a single line, stacked with a 14px gap between
	// lines (line 0 spans 0..16, line 1 starts at 30).
	host := &fakeHost{wrapped: [][]Rect{
		{{Top: 0, Bottom: 16, Height: 16}},
		{{Top: 30, Bottom: 46, Height: 16}},
	}}
	var s State
	s.Set(host, []TextNode{{Text: "a"}, {Text: "b"}})

	base := 2.0 // (20-16)/2
	gap := 30.0 - 16.0
	wantBottom := base + (gap - base)

	ext0 := host.extensions[0]
	if ext0[1] != wantBottom {
		t.Fatalf("expected bottom extension %v to absorb the inter-line gap, got %v", wantBottom, ext0[1])
	}

	ext1 := host.extensions[1]
	if ext1[1] != base {
		t.Fatalf("expected last line's bottom extension to stay at base %v, got %v", base, ext1[1])
	}
}

func TestRemoveClearsActiveAndSavesRange(t *testing.T) {
	host := &fakeHost{unwrapOK: true}
	var s State
	s.active = true

	s.Remove(host)
	if s.Active() {
		t.Fatalf("expected Remove to clear active flag")
	}
	start, end := s.SavedRange()
	if start.Offset != 1 || end.Offset != 2 {
		t.Fatalf("expected saved range from Unwrap, got %+v %+v", start, end)
	}
}

func TestClearIsIdempotentAndSafeWithNilHost(t *testing.T) {
	var s State
	s.Clear(nil)
	if s.Active() {
		t.Fatalf("expected Clear with nil host to leave state inactive")
	}

	host := &fakeHost{}
	s.active = true
	s.Clear(host)
	if s.Active() {
		t.Fatalf("expected Clear to deactivate")
	}
	if host.unwrapCalls != 1 {
		t.Fatalf("expected Clear to call Unwrap exactly once, got %d", host.unwrapCalls)
	}
}
