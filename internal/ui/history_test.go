package ui

import (
	"testing"

	"github.com/piwi3910/PlateQuote/internal/model"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
	if h.UndoLabel() != "" {
		t.Errorf("expected empty undo label, got %q", h.UndoLabel())
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(FormState{Quantity: 100}, "initial"))
	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}
	if h.UndoLabel() != "initial" {
		t.Errorf("expected undo label 'initial', got %q", h.UndoLabel())
	}

	current := MakeSnapshot(FormState{Quantity: 250}, "current")
	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if restored.State.Quantity != 100 {
		t.Errorf("expected quantity 100 after undo, got %d", restored.State.Quantity)
	}
	if !h.CanRedo() {
		t.Error("should be able to redo after undo")
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(FormState{PlateName: "A"}, "plate A"))
	h.Push(MakeSnapshot(FormState{PlateName: "B"}, "plate B"))
	current := MakeSnapshot(FormState{PlateName: "C"}, "plate C")

	s, ok := h.Undo(current)
	if !ok || s.State.PlateName != "B" {
		t.Fatalf("expected plate B, got %q (ok=%v)", s.State.PlateName, ok)
	}
	s2, ok := h.Undo(s)
	if !ok || s2.State.PlateName != "A" {
		t.Fatalf("expected plate A, got %q (ok=%v)", s2.State.PlateName, ok)
	}
	if h.CanUndo() {
		t.Error("undo stack should be empty")
	}

	r, ok := h.Redo(s2)
	if !ok || r.State.PlateName != "B" {
		t.Fatalf("expected redo to plate B, got %q (ok=%v)", r.State.PlateName, ok)
	}
	r2, ok := h.Redo(r)
	if !ok || r2.State.PlateName != "C" {
		t.Fatalf("expected redo to plate C, got %q (ok=%v)", r2.State.PlateName, ok)
	}
	if _, ok := h.Redo(r2); ok {
		t.Error("redo should fail when stack is empty")
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(FormState{Quantity: 1}, "one"))
	if _, ok := h.Undo(MakeSnapshot(FormState{Quantity: 2}, "two")); !ok {
		t.Fatal("undo should succeed")
	}
	h.Push(MakeSnapshot(FormState{Quantity: 3}, "three"))
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
}

func TestMaxDepth(t *testing.T) {
	h := NewHistory()
	h.maxDepth = 3
	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(FormState{Quantity: i}, "step"))
	}
	if len(h.undoStack) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(h.undoStack))
	}
	if h.undoStack[0].State.Quantity != 2 {
		t.Errorf("expected oldest kept quantity 2, got %d", h.undoStack[0].State.Quantity)
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(FormState{}, "a"))
	h.Undo(MakeSnapshot(FormState{}, "b"))
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("clear should empty both stacks")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	state := FormState{
		Accessories: []model.SelectedAccessory{{ID: "a1", Name: "Hook", Price: 0.35, Quantity: 10}},
	}
	snap := MakeSnapshot(state, "with hook")

	state.Accessories[0].Quantity = 99
	if snap.State.Accessories[0].Quantity != 10 {
		t.Errorf("snapshot should not see later edits, got quantity %d", snap.State.Accessories[0].Quantity)
	}
}
