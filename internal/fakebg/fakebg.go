// Package fakebg reifies a hidden platform selection as a set of visible
// highlight spans — the "fake background" shown while the editor has
// lost focus (e.g. a toolbar opened) and the native selection is hidden
// by the platform.
package fakebg

import (
	"sort"

	"github.com/blockcore/editorcore/internal/caret"
)

// HighlightMarker and MutationFreeMarker mirror the DOM attributes the
// spec requires on every wrapper span: the former identifies a fake
// background node for teardown, the latter tells the outer mutation
// observer to ignore the span's presence.
const (
	HighlightMarker    = "fake-background"
	MutationFreeMarker = "mutation-free"
)

// TextNode is one leaf of text intersected by the range being
// highlighted. Start/End are grapheme offsets into Text, already clipped
// to the range's boundaries by the caller for the first/last node.
type TextNode struct {
	Text  string
	Start int
	End   int
}

// Rect is a single client rectangle reported for a wrapper, one per
// visual line that wrapper's content actually occupies.
type Rect struct {
	Top, Bottom, Height float64
}

// Host is the rendering collaborator: it wraps text-node slices in
// highlight spans, reports their client rectangles, applies computed
// extensions as a box-shadow equivalent, and unwraps spans back into
// their parents on teardown.
type Host interface {
	// WrapTextNodes wraps each node in its own highlight span and
	// returns one Rect slice per wrapper (one rect per visual line that
	// wrapper spans), plus anchor points just before the first wrapper
	// and just after the last, used to install the saved range.
	WrapTextNodes(nodes []TextNode) (rects [][]Rect, start, end caret.AnchorPoint)
	// ApplyExtension sets the rendered top/bottom extension (the
	// box-shadow equivalent) on wrapper index i.
	ApplyExtension(wrapperIndex int, top, bottom float64)
	// LineHeight returns the effective line height and font size for
	// wrapper index i, used to compute baseExtension.
	LineHeight(wrapperIndex int) (lineHeight, fontSize float64)
	// Unwrap removes every highlight-marked span, moving each one's
	// content back into its parent, and returns anchor points at the
	// start of the first and the end of the last former wrapper.
	Unwrap() (first, last caret.AnchorPoint, ok bool)
	// InstallRange installs a platform selection spanning [start, end).
	InstallRange(start, end caret.AnchorPoint)
}

// State tracks whether a fake background is currently active and the
// saved range to restore once it is removed.
type State struct {
	active bool
	start  caret.AnchorPoint
	end    caret.AnchorPoint
}

// Active reports whether a fake background is currently installed.
func (s *State) Active() bool { return s.active }

// SavedRange returns the range saved the last time Set or Remove ran.
func (s *State) SavedRange() (start, end caret.AnchorPoint) {
	return s.start, s.end
}

// Set installs a fake background over nodes, a non-empty, already
// range-clipped, document-ordered slice of text nodes. No-op if nodes is
// empty — the spec requires a non-collapsed range to wrap.
func (s *State) Set(host Host, nodes []TextNode) {
	if host == nil || len(nodes) == 0 {
		return
	}

	rects, start, end := host.WrapTextNodes(nodes)
	applyExtensions(host, rects)
	host.InstallRange(start, end)

	s.active = true
	s.start, s.end = start, end
}

// Remove unwraps every highlight span, reconstructs a range from the
// first child of the first former wrapper to the end of the last child
// of the last former wrapper, saves it, and clears the active flag.
func (s *State) Remove(host Host) {
	if host == nil {
		return
	}
	first, last, ok := host.Unwrap()
	s.active = false
	if ok {
		s.start, s.end = first, last
	}
}

// Clear unconditionally unwraps any orphaned highlight spans and clears
// the active flag. Safe to call at any time, including when no
// highlight is active.
func (s *State) Clear(host Host) {
	if host != nil {
		host.Unwrap()
	}
	s.active = false
}

// applyExtensions implements the line-extension algorithm: rectangles
// across all wrappers are clustered into visual lines by top-tolerance,
// and each wrapper's first/last rect receives a top/bottom extension
// computed from its line's neighbors.
func applyExtensions(host Host, perWrapperRects [][]Rect) {
	type entry struct {
		wrapper int
		rectIdx int
		rect    Rect
	}

	var all []entry
	for w, rects := range perWrapperRects {
		for i, r := range rects {
			all = append(all, entry{wrapper: w, rectIdx: i, rect: r})
		}
	}
	if len(all) == 0 {
		return
	}

	sort.Slice(all, func(i, j int) bool { return all[i].rect.Top < all[j].rect.Top })

	const tolerance = 2.0
	var lines [][]entry
	for _, item := range all {
		placed := false
		for i := range lines {
			if abs(lines[i][0].rect.Top-item.rect.Top) <= tolerance {
				lines[i] = append(lines[i], item)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, []entry{item})
		}
	}

	lineTop := func(line []entry) float64 {
		top := line[0].rect.Top
		for _, e := range line {
			if e.rect.Top < top {
				top = e.rect.Top
			}
		}
		return top
	}
	lineBottom := func(line []entry) float64 {
		bottom := line[0].rect.Bottom
		for _, e := range line {
			if e.rect.Bottom > bottom {
				bottom = e.rect.Bottom
			}
		}
		return bottom
	}

	type extent struct{ top, bottom float64 }
	extents := make(map[int]*extent, len(perWrapperRects))
	get := func(w int) *extent {
		e, ok := extents[w]
		if !ok {
			e = &extent{}
			extents[w] = e
		}
		return e
	}

	for li, line := range lines {
		for _, item := range line {
			lh, fs := host.LineHeight(item.wrapper)
			effective := lh
			if effective <= 0 {
				effective = 1.2 * fs
			}
			base := effective - item.rect.Height
			if base < 0 {
				base = 0
			}
			base /= 2

			e := get(item.wrapper)
			if item.rectIdx == 0 {
				e.top = base
			}

			bottom := base
			if li < len(lines)-1 {
				gap := lineTop(lines[li+1]) - lineBottom(line)
				extra := gap - base
				if extra < 0 {
					extra = 0
				}
				bottom = base + extra
			}
			e.bottom = bottom
		}
	}

	for w, e := range extents {
		host.ApplyExtension(w, e.top, e.bottom)
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
