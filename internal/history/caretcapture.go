package history

import (
	"github.com/blockcore/editorcore/internal/blockdoc"
	"github.com/blockcore/editorcore/internal/caret"
	"github.com/blockcore/editorcore/internal/grouping"
)

// Modifiers mirrors a keyboard event's modifier keys, enough to detect
// the undo/redo chords and to tell a plain character key from a
// control combination.
type Modifiers struct {
	Ctrl  bool
	Meta  bool
	Alt   bool
	Shift bool
}

func (m Modifiers) primary() bool { return m.Ctrl || m.Meta }

// HandleKeydown implements the primary caret-capture path (section
// 4.5.4): on the first mutation-producing key of an action group, the
// current caret is captured so an eventual undo lands back where the
// user was. Navigation keys, modifier-only presses, and the undo/redo
// chords are not mutation-producing and are ignored here.
func (e *Engine) HandleKeydown(key string, mods Modifiers, blockID blockdoc.BlockID, current caret.Position) {
	if isModifierOnlyKey(key) || isUndoRedoChord(key, mods) {
		return
	}

	actionType, ch, ok := classifyMutationKey(key, mods)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasCapturedGroupPosition {
		c := current
		e.pendingCaret = &c
		e.hasCapturedGroupPosition = true
		e.keydownCapturedPosition = true
	}

	e.pendingAction = &grouping.ActionContext{
		Type:      actionType,
		BlockID:   blockID,
		Timestamp: now(),
		Char:      ch,
	}
}

// HandleSelectionChange implements the fallback caret-capture path for
// mutations that do not originate from a captured keydown (context-menu
// paste, drag-and-drop). If the keydown path already captured the
// pre-mutation position for this group, it is left alone: selectionchange
// fires after the mutation has already happened.
func (e *Engine) HandleSelectionChange(insideEditor bool, current caret.Position) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.keydownCapturedPosition {
		return
	}
	if !insideEditor {
		return
	}
	c := current
	e.pendingCaret = &c
}

func isModifierOnlyKey(key string) bool {
	switch key {
	case "Control", "Shift", "Alt", "Meta":
		return true
	default:
		return false
	}
}

func isUndoRedoChord(key string, mods Modifiers) bool {
	if !mods.primary() {
		return false
	}
	switch key {
	case "z", "Z":
		return true
	case "y", "Y":
		return true
	default:
		return false
	}
}

// classifyMutationKey reports the action type and, for a plain
// character, the inserted rune. Navigation keys (arrows, Home, End,
// PageUp/PageDown, Tab) are deliberately not mutation-producing: their
// selection change is observed through HandleSelectionChange instead.
func classifyMutationKey(key string, mods Modifiers) (grouping.ActionType, rune, bool) {
	switch key {
	case "Backspace":
		return grouping.ActionDeleteBack, 0, true
	case "Delete":
		return grouping.ActionDeleteForward, 0, true
	case "Enter":
		return grouping.ActionInsert, '\n', true
	}

	if mods.primary() || mods.Alt {
		return 0, 0, false
	}

	runes := []rune(key)
	if len(runes) != 1 {
		return 0, 0, false
	}
	return grouping.ActionInsert, runes[0], true
}
