package caret

// Node is the smallest abstraction this package needs over a live
// document tree: enough to walk ancestors and test tag/class identity,
// without depending on any concrete rendering target.
type Node interface {
	Tag() string
	ClassName() string
	Parent() (Node, bool)
}

// AnchorPoint is where a platform selection endpoint lands: the node it
// is attached to, plus a grapheme offset into that node's text.
type AnchorPoint struct {
	Node   Node
	Offset int
}

// Selection is the platform collaborator C1 wraps. A nil Selection (or
// one returning ok=false) always means "no selection" and every derived
// accessor below degrades to its documented zero value.
type Selection interface {
	Anchor() (AnchorPoint, bool)
	Head() (AnchorPoint, bool)
	IsCollapsed() bool
}

// GetAnchor returns the selection's anchor point, or zero/false when sel
// is nil or reports no selection. Never panics.
func GetAnchor(sel Selection) (AnchorPoint, bool) {
	if sel == nil {
		return AnchorPoint{}, false
	}
	return sel.Anchor()
}

// IsCollapsedSafe reports sel's collapsed state, or nil (via ok=false)
// when there is no selection to ask.
func IsCollapsedSafe(sel Selection) (collapsed bool, ok bool) {
	if sel == nil {
		return false, false
	}
	if _, has := sel.Anchor(); !has {
		return false, false
	}
	return sel.IsCollapsed(), true
}

// IsSelectionAtEditor reports whether sel's anchor node is the editor
// root or a descendant of it, as decided by the caller-supplied
// isEditorRoot predicate applied to the anchor node and its ancestors.
func IsSelectionAtEditor(sel Selection, isEditorRoot func(Node) bool) bool {
	anchor, ok := GetAnchor(sel)
	if !ok || isEditorRoot == nil {
		return false
	}
	return FindAncestor(anchor.Node, isEditorRoot, 0) != nil
}

// FindAncestor walks up from start (inclusive) looking for a node
// satisfying match, bounded by maxDepth ancestors (0 means unbounded).
// Returns nil if start is nil or no match is found within the bound.
func FindAncestor(start Node, match func(Node) bool, maxDepth int) Node {
	if start == nil || match == nil {
		return nil
	}
	n := start
	for depth := 0; ; depth++ {
		if match(n) {
			return n
		}
		if maxDepth > 0 && depth >= maxDepth {
			return nil
		}
		parent, ok := n.Parent()
		if !ok {
			return nil
		}
		n = parent
	}
}

// FindParentTag walks up from both the anchor and the head of sel,
// independently, looking for an element whose Tag (and, if className is
// non-empty, ClassName) match. Each walk is bounded by depth ancestors
// (default 10 when depth <= 0). Returns the first match found, trying
// the anchor side before the head side.
func FindParentTag(sel Selection, tag, className string, depth int) (Node, bool) {
	if depth <= 0 {
		depth = 10
	}
	match := func(n Node) bool {
		if n.Tag() != tag {
			return false
		}
		return className == "" || n.ClassName() == className
	}

	if sel == nil {
		return nil, false
	}
	if anchor, ok := sel.Anchor(); ok {
		if found := FindAncestor(anchor.Node, match, depth); found != nil {
			return found, true
		}
	}
	if head, ok := sel.Head(); ok {
		if found := FindAncestor(head.Node, match, depth); found != nil {
			return found, true
		}
	}
	return nil, false
}
