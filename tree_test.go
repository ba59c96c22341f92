package segtree

import (
	"errors"
	"testing"
)

func smallConfig() Config[int] {
	// sizeof(int) = 8 on a 64-bit build: SegmentTarget 32 -> SEG_MAX 4.
	return Config[int]{SegmentTarget: 32, BaseTarget: 64}
}

func collect(t *Tree[int]) []int {
	out := make([]int, 0, t.Len())
	it := t.Begin()
	for it.Valid() {
		out = append(out, it.Value())
		it.Next()
	}
	return out
}

func equalSlices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New[int](Config[int]{SegmentTarget: -1})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestEmptyTree(t *testing.T) {
	tree, err := New[int](smallConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tree.IsEmpty() || tree.Len() != 0 || tree.Height() != 0 {
		t.Fatalf("unexpected empty tree state")
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("empty tree should validate: %v", err)
	}
}

// Boundary scenario 1: prepend 0..9, expect reverse order on iteration.
func TestPrependSequence(t *testing.T) {
	tree, err := New[int](smallConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := tree.PushFront(i); err != nil {
			t.Fatalf("PushFront(%d): %v", i, err)
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("invariant violated after PushFront(%d): %v\n%s", i, err, tree.DebugDump())
		}
	}
	want := []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	if got := collect(tree); !equalSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// Boundary scenario 2: erase from [0,1,2,3,4] in a fixed sequence of positions.
func TestEraseSequence(t *testing.T) {
	tree, err := FromSlice[int](smallConfig(), []int{0, 1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	steps := []struct {
		pos  int
		want []int
	}{
		{2, []int{0, 1, 3, 4}},
		{0, []int{1, 3, 4}},
		{2, []int{1, 3}},
		{1, []int{1}},
		{0, []int{}},
	}
	for _, st := range steps {
		if _, err := tree.Erase(st.pos); err != nil {
			t.Fatalf("Erase(%d): %v", st.pos, err)
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("invariant violated after Erase(%d): %v\n%s", st.pos, err, tree.DebugDump())
		}
		if got := collect(tree); !equalSlices(got, st.want) {
			t.Fatalf("after Erase(%d): got %v, want %v", st.pos, got, st.want)
		}
	}
	if !tree.IsEmpty() || tree.Height() != 0 {
		t.Fatalf("expected empty tree at height 0 after draining, got len=%d height=%d", tree.Len(), tree.Height())
	}
}

// Boundary scenario 3: with SEG_MAX = 4, push 0..4 at the back, height
// becomes 2 on the 5th insert; then erase from the front back to empty.
func TestHeightTransitions(t *testing.T) {
	cfg := Config[int]{SegmentTarget: 32, BaseTarget: 64} // SEG_MAX = 4
	tree, err := New[int](cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := tree.PushBack(i); err != nil {
			t.Fatalf("PushBack(%d): %v", i, err)
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("invariant violated after PushBack(%d): %v\n%s", i, err, tree.DebugDump())
		}
	}
	if tree.Height() != 2 {
		t.Fatalf("expected height 2 after 5th insert, got %d", tree.Height())
	}
	want := []int{0, 1, 2, 3, 4}
	if got := collect(tree); !equalSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for !tree.IsEmpty() {
		if _, err := tree.Erase(0); err != nil {
			t.Fatalf("Erase(0): %v", err)
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("invariant violated mid-drain: %v\n%s", err, tree.DebugDump())
		}
	}
	if tree.Height() != 0 {
		t.Fatalf("expected height 0 once empty, got %d", tree.Height())
	}
}

// Boundary scenario 4: construct from [0,1,2,4], insert 3 before nth(3).
func TestInsertIntoGap(t *testing.T) {
	tree, err := FromSlice[int](smallConfig(), []int{0, 1, 2, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tree.Insert(3, 3); err != nil {
		t.Fatalf("Insert(3,3): %v", err)
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("invariant violated: %v\n%s", err, tree.DebugDump())
	}
	want := []int{0, 1, 2, 3, 4}
	if got := collect(tree); !equalSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAtAndFrontBack(t *testing.T) {
	tree, err := FromSlice[int](smallConfig(), []int{10, 20, 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.At(1) != 20 {
		t.Fatalf("At(1) = %d, want 20", tree.At(1))
	}
	if tree.Front() != 10 {
		t.Fatalf("Front() = %d, want 10", tree.Front())
	}
	if tree.Back() != 30 {
		t.Fatalf("Back() = %d, want 30", tree.Back())
	}
}

func TestAtOutOfRangePanics(t *testing.T) {
	tree, _ := New[int](smallConfig())
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out-of-range At")
		}
	}()
	tree.At(0)
}

// Insert/erase cancellation: insert(p, v); erase(p) restores the sequence.
func TestInsertEraseCancellation(t *testing.T) {
	base := make([]int, 50)
	for i := range base {
		base[i] = i
	}
	for p := 0; p <= len(base); p++ {
		tree, err := FromSlice[int](smallConfig(), base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := tree.Insert(p, -1); err != nil {
			t.Fatalf("Insert(%d): %v", p, err)
		}
		if _, err := tree.Erase(p); err != nil {
			t.Fatalf("Erase(%d): %v", p, err)
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("invariant violated at p=%d: %v\n%s", p, err, tree.DebugDump())
		}
		if got := collect(tree); !equalSlices(got, base) {
			t.Fatalf("p=%d: got %v, want %v", p, got, base)
		}
	}
}

func TestSwapIsInvolutive(t *testing.T) {
	a, _ := FromSlice[int](smallConfig(), []int{1, 2, 3})
	b, _ := FromSlice[int](smallConfig(), []int{4, 5, 6, 7})
	wantA, wantB := collect(a), collect(b)
	if err := a.Swap(b); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if err := a.Swap(b); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if got := collect(a); !equalSlices(got, wantA) {
		t.Fatalf("a: got %v, want %v", got, wantA)
	}
	if got := collect(b); !equalSlices(got, wantB) {
		t.Fatalf("b: got %v, want %v", got, wantB)
	}
}

func TestPushPopFrontBack(t *testing.T) {
	tree, _ := New[int](smallConfig())
	if err := tree.PushBack(1); err != nil {
		t.Fatalf("PushBack: %v", err)
	}
	if err := tree.PushFront(0); err != nil {
		t.Fatalf("PushFront: %v", err)
	}
	if err := tree.PushBack(2); err != nil {
		t.Fatalf("PushBack: %v", err)
	}
	if got := tree.PopBack(); got != 2 {
		t.Fatalf("PopBack() = %d, want 2", got)
	}
	if got := tree.PopFront(); got != 0 {
		t.Fatalf("PopFront() = %d, want 0", got)
	}
	if got, want := collect(tree), []int{1}; !equalSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSetAt(t *testing.T) {
	tree, _ := FromSlice[int](smallConfig(), []int{1, 2, 3})
	tree.SetAt(1, 99)
	if got, want := collect(tree), []int{1, 99, 3}; !equalSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestInsertNAndInsertSeq(t *testing.T) {
	tree, _ := FromSlice[int](smallConfig(), []int{1, 2})
	if err := tree.InsertN(1, 3, 0); err != nil {
		t.Fatalf("InsertN: %v", err)
	}
	if got, want := collect(tree), []int{1, 0, 0, 0, 2}; !equalSlices(got, want) {
		t.Fatalf("after InsertN: got %v, want %v", got, want)
	}
	if err := tree.InsertSeq(0, []int{8, 9}); err != nil {
		t.Fatalf("InsertSeq: %v", err)
	}
	if got, want := collect(tree), []int{8, 9, 1, 0, 0, 0, 2}; !equalSlices(got, want) {
		t.Fatalf("after InsertSeq: got %v, want %v", got, want)
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("invariant violated: %v\n%s", err, tree.DebugDump())
	}
}

func TestEraseRangeErasesFromBack(t *testing.T) {
	tree, _ := FromSlice[int](smallConfig(), []int{0, 1, 2, 3, 4, 5})
	if err := tree.EraseRange(1, 3); err != nil {
		t.Fatalf("EraseRange: %v", err)
	}
	if got, want := collect(tree), []int{0, 4, 5}; !equalSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if err := tree.Check(); err != nil {
		t.Fatalf("invariant violated: %v\n%s", err, tree.DebugDump())
	}
}

func TestSegmentCount(t *testing.T) {
	tree, _ := New[int](smallConfig())
	if tree.SegmentCount() != 0 {
		t.Fatalf("empty tree: SegmentCount() = %d, want 0", tree.SegmentCount())
	}
	for i := 0; i < 40; i++ {
		if err := tree.PushBack(i); err != nil {
			t.Fatalf("PushBack(%d): %v", i, err)
		}
	}
	if got := tree.SegmentCount(); got < 2 {
		t.Fatalf("SegmentCount() = %d, want at least 2 after 40 pushes", got)
	}
}

func TestMaxSize(t *testing.T) {
	tree, _ := New[int](smallConfig())
	if tree.MaxSize() <= 0 {
		t.Fatalf("MaxSize() = %d, want a large positive bound", tree.MaxSize())
	}
}

func TestClone(t *testing.T) {
	tree, _ := FromSlice[int](smallConfig(), []int{1, 2, 3, 4, 5})
	clone, err := tree.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if got, want := collect(clone), collect(tree); !equalSlices(got, want) {
		t.Fatalf("clone mismatch: got %v, want %v", got, want)
	}
	if err := clone.PushBack(6); err != nil {
		t.Fatalf("PushBack: %v", err)
	}
	if tree.Len() == clone.Len() {
		t.Fatalf("clone must not share storage with the original")
	}
}

func TestCopyFromShrinkGrowAndEqual(t *testing.T) {
	shrink, _ := FromSlice[int](smallConfig(), []int{1, 2, 3, 4, 5})
	src, _ := FromSlice[int](smallConfig(), []int{9, 8})
	if err := shrink.CopyFrom(src); err != nil {
		t.Fatalf("CopyFrom (shrink): %v", err)
	}
	if got, want := collect(shrink), []int{9, 8}; !equalSlices(got, want) {
		t.Fatalf("shrink: got %v, want %v", got, want)
	}

	grow, _ := FromSlice[int](smallConfig(), []int{1, 2})
	src2, _ := FromSlice[int](smallConfig(), []int{9, 8, 7, 6, 5})
	if err := grow.CopyFrom(src2); err != nil {
		t.Fatalf("CopyFrom (grow): %v", err)
	}
	if got, want := collect(grow), []int{9, 8, 7, 6, 5}; !equalSlices(got, want) {
		t.Fatalf("grow: got %v, want %v", got, want)
	}
	if err := grow.Check(); err != nil {
		t.Fatalf("invariant violated: %v\n%s", err, grow.DebugDump())
	}

	equal, _ := FromSlice[int](smallConfig(), []int{1, 2, 3})
	src3, _ := FromSlice[int](smallConfig(), []int{7, 8, 9})
	if err := equal.CopyFrom(src3); err != nil {
		t.Fatalf("CopyFrom (equal): %v", err)
	}
	if got, want := collect(equal), []int{7, 8, 9}; !equalSlices(got, want) {
		t.Fatalf("equal: got %v, want %v", got, want)
	}
}

func TestAssignNAndAssignSeq(t *testing.T) {
	tree, _ := FromSlice[int](smallConfig(), []int{1, 2, 3})
	if err := tree.AssignN(5, 7); err != nil {
		t.Fatalf("AssignN: %v", err)
	}
	if got, want := collect(tree), []int{7, 7, 7, 7, 7}; !equalSlices(got, want) {
		t.Fatalf("AssignN: got %v, want %v", got, want)
	}
	if err := tree.AssignSeq([]int{1, 2}); err != nil {
		t.Fatalf("AssignSeq: %v", err)
	}
	if got, want := collect(tree), []int{1, 2}; !equalSlices(got, want) {
		t.Fatalf("AssignSeq: got %v, want %v", got, want)
	}
}

func TestMoveFrom(t *testing.T) {
	dst, _ := FromSlice[int](smallConfig(), []int{1, 2})
	src, _ := FromSlice[int](smallConfig(), []int{3, 4, 5})
	if err := dst.MoveFrom(src); err != nil {
		t.Fatalf("MoveFrom: %v", err)
	}
	if got, want := collect(dst), []int{3, 4, 5}; !equalSlices(got, want) {
		t.Fatalf("dst: got %v, want %v", got, want)
	}
	if !src.IsEmpty() {
		t.Fatalf("src should be empty after MoveFrom, got len %d", src.Len())
	}
}

func TestResize(t *testing.T) {
	tree, _ := FromSlice[int](smallConfig(), []int{1, 2, 3})
	if err := tree.Resize(5, 0); err != nil {
		t.Fatalf("Resize grow: %v", err)
	}
	if got, want := collect(tree), []int{1, 2, 3, 0, 0}; !equalSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if err := tree.Resize(1, 0); err != nil {
		t.Fatalf("Resize shrink: %v", err)
	}
	if got, want := collect(tree), []int{1}; !equalSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
