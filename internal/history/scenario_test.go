package history

import (
	"context"
	"testing"
	"time"

	"github.com/blockcore/editorcore/internal/caret"
	"github.com/blockcore/editorcore/internal/config"
)

func scenarioConfig() config.Options {
	return config.New(
		config.WithHistoryDebounceTime(20*time.Millisecond),
		config.WithNewGroupDelay(60*time.Millisecond),
	)
}

// TestTypingDebounceCollapsesToOneEntry verifies that five keystrokes
// inside the debounce window collapse into a single new undo entry
// once the debounce fires.
func TestTypingDebounceCollapsesToOneEntry(t *testing.T) {
	mgr := newFakeManager(&fakeBlock{id: "p", typ: "paragraph", tool: &paragraphTool{text: ""}, focusable: true, inputs: 1})
	obs := &fakeObserver{enabled: true}
	e := New(scenarioConfig(), Deps{Manager: mgr, Observer: obs})
	e.CaptureInitialState(context.Background())

	word := "hello"
	for i := 1; i <= len(word); i++ {
		mgr.blocks[0].tool.text = word[:i]
		e.HandleKeydown("h", Modifiers{}, "p", caret.NewCollapsed("p", 0, 0, i-1))
		e.HandleBlockChanged(context.Background(), "p")
	}

	time.Sleep(40 * time.Millisecond)

	if got := e.stacks.undoCount(); got != 2 {
		t.Fatalf("undo count = %d, want 2", got)
	}
	tail, ok := e.stacks.tail()
	if !ok {
		t.Fatal("expected a tail entry")
	}
	if len(tail.Snapshot.Blocks) != 1 || string(tail.Snapshot.Blocks[0].Data) != "hello" {
		t.Fatalf("tail snapshot = %+v, want single block with data \"hello\"", tail.Snapshot.Blocks)
	}
}

// TestUndoRestoresPreActionCaret verifies that three backspaces
// collapse into one entry, and that undoing restores both the text
// and the caret offset from before the first backspace.
func TestUndoRestoresPreActionCaret(t *testing.T) {
	mgr := newFakeManager(&fakeBlock{id: "p", typ: "paragraph", tool: &paragraphTool{text: "Привет"}, focusable: true, inputs: 1})
	obs := &fakeObserver{enabled: true}
	helper := &fakeCaretHelper{}
	e := New(scenarioConfig(), Deps{Manager: mgr, Observer: obs, CaretHelper: helper})
	e.CaptureInitialState(context.Background())

	preActionCaret := caret.NewCollapsed("p", 0, 0, 6)

	remaining := "Привет"
	for i := 0; i < 3; i++ {
		runes := []rune(remaining)
		remaining = string(runes[:len(runes)-1])
		mgr.blocks[0].tool.text = remaining
		e.HandleKeydown("Backspace", Modifiers{}, "p", preActionCaret)
		e.HandleBlockChanged(context.Background(), "p")
	}

	time.Sleep(40 * time.Millisecond)

	if mgr.blocks[0].tool.text != "При" {
		t.Fatalf("text before undo = %q, want При", mgr.blocks[0].tool.text)
	}

	if !e.Undo(context.Background()) {
		t.Fatal("Undo failed")
	}

	if mgr.blocks[0].tool.text != "Привет" {
		t.Fatalf("text after undo = %q, want Привет", mgr.blocks[0].tool.text)
	}
	if helper.lastOffset != 6 {
		t.Fatalf("restored caret offset = %d, want 6", helper.lastOffset)
	}
}

// TestPauseCreatesCheckpoint verifies that a typing pause longer than
// NewGroupDelay forces the in-flight text to become its own checkpoint
// rather than merging with what follows.
func TestPauseCreatesCheckpoint(t *testing.T) {
	mgr := newFakeManager(&fakeBlock{id: "p", typ: "paragraph", tool: &paragraphTool{text: ""}, focusable: true, inputs: 1})
	obs := &fakeObserver{enabled: true}
	e := New(scenarioConfig(), Deps{Manager: mgr, Observer: obs})
	e.CaptureInitialState(context.Background())

	mgr.blocks[0].tool.text = "abc"
	e.HandleKeydown("c", Modifiers{}, "p", caret.Zero)
	e.HandleBlockChanged(context.Background(), "p")
	time.Sleep(80 * time.Millisecond)

	mgr.blocks[0].tool.text = "abcdef"
	e.HandleKeydown("f", Modifiers{}, "p", caret.Zero)
	e.HandleBlockChanged(context.Background(), "p")
	time.Sleep(40 * time.Millisecond)

	if !e.Undo(context.Background()) {
		t.Fatal("first undo failed")
	}
	if mgr.blocks[0].tool.text != "abc" {
		t.Fatalf("text after first undo = %q, want abc", mgr.blocks[0].tool.text)
	}

	if !e.Undo(context.Background()) {
		t.Fatal("second undo failed")
	}
	// The initial single empty paragraph was recorded as an empty block
	// list, so undoing back to it leaves the document with no blocks.
	if len(mgr.blocks) != 0 {
		t.Fatalf("blocks after second undo = %d, want 0 (empty document)", len(mgr.blocks))
	}
}
