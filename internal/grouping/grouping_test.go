package grouping

import (
	"testing"
	"time"
)

func TestFirstActionNeverCheckpoints(t *testing.T) {
	p := NewPolicy()
	got := p.ShouldCreateCheckpoint(ActionContext{Type: ActionInsert, BlockID: "b1", Timestamp: time.Now()})
	if got {
		t.Fatalf("expected first action to never force a checkpoint")
	}
}

func TestBlockChangeAlwaysCheckpoints(t *testing.T) {
	p := NewPolicy()
	p.ShouldCreateCheckpoint(ActionContext{Type: ActionInsert, BlockID: "b1"})

	got := p.ShouldCreateCheckpoint(ActionContext{Type: ActionInsert, BlockID: "b2"})
	if !got {
		t.Fatalf("expected block id change to force a checkpoint")
	}
}

func TestSameTypeSameBlockNeverCheckpoints(t *testing.T) {
	p := NewPolicy()
	p.ShouldCreateCheckpoint(ActionContext{Type: ActionInsert, BlockID: "b1"})

	got := p.ShouldCreateCheckpoint(ActionContext{Type: ActionInsert, BlockID: "b1"})
	if got {
		t.Fatalf("expected repeated same-type action on same block to be grouped")
	}
}

func TestUnrelatedTypeChangeCheckpointsImmediately(t *testing.T) {
	p := NewPolicy()
	p.ShouldCreateCheckpoint(ActionContext{Type: ActionInsert, BlockID: "b1"})

	got := p.ShouldCreateCheckpoint(ActionContext{Type: ActionFormat, BlockID: "b1"})
	if !got {
		t.Fatalf("expected a type change outside the correction family to checkpoint immediately")
	}
}

func TestCorrectionFamilyStaysGroupedBelowThreshold(t *testing.T) {
	p := NewPolicy()
	p.ShouldCreateCheckpoint(ActionContext{Type: ActionInsert, BlockID: "b1"})

	for i := 0; i < ActionChangeThreshold-1; i++ {
		typ := ActionDeleteBack
		if i%2 == 1 {
			typ = ActionInsert
		}
		got := p.ShouldCreateCheckpoint(ActionContext{Type: typ, BlockID: "b1"})
		if got {
			t.Fatalf("expected correction-family flip %d to stay grouped under threshold %d", i, ActionChangeThreshold)
		}
	}
}

func TestCorrectionFamilyCheckpointsAtThreshold(t *testing.T) {
	p := NewPolicy()
	p.ShouldCreateCheckpoint(ActionContext{Type: ActionInsert, BlockID: "b1"})

	var last bool
	for i := 0; i < ActionChangeThreshold; i++ {
		typ := ActionDeleteBack
		if i%2 == 1 {
			typ = ActionInsert
		}
		last = p.ShouldCreateCheckpoint(ActionContext{Type: typ, BlockID: "b1"})
	}
	if !last {
		t.Fatalf("expected threshold-th correction-family flip to force a checkpoint")
	}
}

func TestIsImmediateCheckpoint(t *testing.T) {
	immediate := []ActionType{ActionFormat, ActionStructural, ActionPaste, ActionCut}
	for _, typ := range immediate {
		if !IsImmediateCheckpoint(typ) {
			t.Errorf("expected %v to be an immediate checkpoint", typ)
		}
	}

	grouped := []ActionType{ActionInsert, ActionDeleteBack, ActionDeleteForward}
	for _, typ := range grouped {
		if IsImmediateCheckpoint(typ) {
			t.Errorf("expected %v not to be an immediate checkpoint", typ)
		}
	}
}

func TestResetClearsContext(t *testing.T) {
	p := NewPolicy()
	p.ShouldCreateCheckpoint(ActionContext{Type: ActionInsert, BlockID: "b1"})
	p.Reset()

	got := p.ShouldCreateCheckpoint(ActionContext{Type: ActionFormat, BlockID: "b1"})
	if got {
		t.Fatalf("expected the action immediately after Reset to behave like the very first action")
	}
}
