package history

import (
	"context"
	"sync"
)

// Coordinator arbitrates process-wide undo/redo shortcuts across every
// live Engine. Each engine becomes the "active instance" the moment it
// sees a mutation; a document-level shortcut (one not captured by a
// specific block's own input handling) is routed to whichever engine
// was most recently active, when GlobalUndoRedo is enabled. There is
// exactly one Coordinator per process/editor page.
type Coordinator struct {
	mu     sync.Mutex
	active *Engine
}

// NewCoordinator returns an empty Coordinator with no active instance.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Acquire marks e as the active instance. Called on every mutation the
// engine observes, so shortcuts follow whichever document the user is
// actually typing into.
func (c *Coordinator) Acquire(e *Engine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = e
}

// Release clears e as the active instance, but only if it still is one;
// an engine destroyed after losing the race to a newer mutation must not
// clobber whichever engine is now active.
func (c *Coordinator) Release(e *Engine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == e {
		c.active = nil
	}
}

// Active returns the currently active engine, if any.
func (c *Coordinator) Active() (*Engine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.active != nil
}

// DispatchUndo routes a document-level undo shortcut to the active
// engine, if GlobalUndoRedo is enabled on it. Returns false if there is
// no active engine, or the active engine declined the shortcut.
func (c *Coordinator) DispatchUndo(ctx context.Context) bool {
	e, ok := c.Active()
	if !ok || !e.cfg.GlobalUndoRedo {
		return false
	}
	return e.Undo(ctx)
}

// DispatchRedo is DispatchUndo's redo counterpart.
func (c *Coordinator) DispatchRedo(ctx context.Context) bool {
	e, ok := c.Active()
	if !ok || !e.cfg.GlobalUndoRedo {
		return false
	}
	return e.Redo(ctx)
}
