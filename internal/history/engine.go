// Package history implements the undo/redo engine: snapshot capture,
// debounced and batched mutation grouping, caret capture, structural
// diff restoration, and caret restoration fallbacks.
//
// Each entry holds a full blockdoc.Snapshot rather than a replayable
// command: block data is opaque and tool-owned, so there is no
// operation log to replay, only whole-document states to diff and
// restore between.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/blockcore/editorcore/internal/blockdoc"
	"github.com/blockcore/editorcore/internal/caret"
	"github.com/blockcore/editorcore/internal/config"
	"github.com/blockcore/editorcore/internal/corelog"
	"github.com/blockcore/editorcore/internal/event"
	"github.com/blockcore/editorcore/internal/fakebg"
	"github.com/blockcore/editorcore/internal/grouping"
)

// RestoreCooldown is the wait after a restore during which late-firing
// mutation events are ignored, so a tool's own change notification for
// the restore we just performed doesn't get mistaken for a new edit.
const RestoreCooldown = 100 * time.Millisecond

// HistoryState is published on TopicHistoryStateChanged whenever
// canUndo/canRedo may have changed, so host UI can grey out buttons.
type HistoryState struct {
	CanUndo bool
	CanRedo bool
}

// Engine is one editor instance's undo/redo history. It is safe for
// concurrent use; the debounce timer and explicit calls (Undo, Redo,
// mutation intake) may arrive from different goroutines.
type Engine struct {
	mu sync.Mutex

	cfg config.Options

	stacks *stacks
	policy *grouping.Policy

	manager     blockdoc.Manager
	observer    blockdoc.ModificationsObserver
	fakeBG      *fakebg.State
	fgHost      fakebg.Host
	caretHelper caret.Helper
	bus         *event.Bus
	log         *corelog.Logger
	coord       *Coordinator

	initialCaptured bool
	restoring       bool
	destroyed       bool

	batchDepth        int
	batchHasMutations bool
	batchCaret        *caret.Position
	generation        uint64

	pendingCaret             *caret.Position
	hasCapturedGroupPosition bool
	keydownCapturedPosition  bool
	pendingAction            *grouping.ActionContext

	lastMutationTime time.Time
	debounceTimer    *time.Timer

	inlineFocused func() bool
}

// Deps bundles Engine's required collaborators.
type Deps struct {
	Manager     blockdoc.Manager
	Observer    blockdoc.ModificationsObserver
	FGHost      fakebg.Host
	CaretHelper caret.Helper
	Bus         *event.Bus
	Log         *corelog.Logger
	Coord       *Coordinator

	// InlineToolFocused reports whether an inline-tool input currently
	// has focus. Nil is treated as "never focused", so the fake
	// background is always cleared on record.
	InlineToolFocused func() bool
}

// New constructs an Engine. cfg supplies the four tunables; deps
// supplies the host collaborators.
func New(cfg config.Options, deps Deps) *Engine {
	log := deps.Log
	if log == nil {
		log = corelog.Null
	}
	return &Engine{
		cfg:         cfg,
		stacks:      newStacks(cfg.MaxHistoryLength),
		policy:      grouping.NewPolicy(),
		manager:     deps.Manager,
		observer:    deps.Observer,
		fakeBG:      &fakebg.State{},
		fgHost:      deps.FGHost,
		caretHelper: deps.CaretHelper,
		bus:         deps.Bus,
		log:         log,
		coord:       deps.Coord,

		inlineFocused: deps.InlineToolFocused,
	}
}

// CaptureInitialState captures a snapshot exactly once and seeds the
// undo stack with one caret-less entry. Safe to call repeatedly.
func (e *Engine) CaptureInitialState(ctx context.Context) {
	e.mu.Lock()
	if e.initialCaptured {
		e.mu.Unlock()
		return
	}
	e.initialCaptured = true
	e.mu.Unlock()

	snap := e.buildSnapshot(ctx)
	e.stacks.seed(Entry{ID: newEntryID(), Snapshot: snap, CreatedAt: now()})
	e.emitState()
}

// CanUndo reports whether Undo would succeed.
func (e *Engine) CanUndo() bool { return e.stacks.canUndo() }

// CanRedo reports whether Redo would succeed.
func (e *Engine) CanRedo() bool { return e.stacks.canRedo() }

// UndoEntries returns read-only info on every undo-stack entry, for
// host UI introspection (e.g. a history picker).
func (e *Engine) UndoEntries() []EntryInfo { return e.stacks.undoEntries() }

// PeekUndo and PeekRedo report the entry Undo/Redo would land on,
// without performing it.
func (e *Engine) PeekUndo() (EntryInfo, bool) { return e.stacks.peekUndo() }
func (e *Engine) PeekRedo() (EntryInfo, bool) { return e.stacks.peekRedo() }

// Clear empties both stacks and resets all grouping/capture state, as
// if the engine had just been constructed.
func (e *Engine) Clear() {
	e.mu.Lock()
	e.stopDebounceLocked()
	e.initialCaptured = false
	e.batchDepth = 0
	e.batchHasMutations = false
	e.batchCaret = nil
	e.pendingCaret = nil
	e.hasCapturedGroupPosition = false
	e.keydownCapturedPosition = false
	e.pendingAction = nil
	e.lastMutationTime = time.Time{}
	e.policy.Reset()
	e.mu.Unlock()

	e.stacks.clear()
	e.emitState()
}

// Destroy deregisters this instance from shortcut arbitration, clears
// the debounce, and empties the stacks. The Engine must not be used
// afterward.
func (e *Engine) Destroy() {
	e.mu.Lock()
	e.stopDebounceLocked()
	e.destroyed = true
	e.mu.Unlock()

	if e.coord != nil {
		e.coord.Release(e)
	}
	e.stacks.clear()
}

func (e *Engine) stopDebounceLocked() {
	if e.debounceTimer != nil {
		e.debounceTimer.Stop()
		e.debounceTimer = nil
	}
}

func (e *Engine) emitState() {
	if e.bus == nil {
		return
	}
	e.bus.Publish(event.TopicHistoryStateChanged, HistoryState{CanUndo: e.CanUndo(), CanRedo: e.CanRedo()}, "history")
}

var nowFn = time.Now

func now() time.Time { return nowFn() }
