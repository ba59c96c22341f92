package segtree

import "fmt"

// insertChain is the whole set of segments/nodes an insert's split cascade
// might need, acquired in a single fallible pre-step so that a failed
// allocation anywhere in the chain leaves the tree untouched. Go's garbage
// collector stands in for an explicit release step: an unused chain member
// is simply never linked into the tree and is collected normally.
type insertChain[T any] struct {
	newSegment *segment[T]
	newNodes   []treeNode[T] // one per already-full ancestor, leaf first
	newRoot    *branchNode[T]
}

// buildInsertChain walks the spine from loc's owning leaf upward, counting
// how many ancestors are already at capacity, and acquires exactly the
// segments/nodes a full split cascade could need: one segment (the current
// segment is always full when this is called), one node per full ancestor,
// and — only if the cascade would reach a full root — one more node to
// serve as the new root.
func (t *Tree[T]) buildInsertChain(loc locator[T]) (insertChain[T], error) {
	var chain insertChain[T]

	seg, err := t.cfg.Allocator.NewSegment(t.segMax)
	if err != nil {
		return chain, err
	}
	chain.newSegment = seg

	if loc.leaf == nil {
		return chain, nil // height == 1: the new leaf is allocated directly, not from the chain
	}

	var cur treeNode[T] = loc.leaf
	for cur.slotCount() == t.baseMax {
		var nn treeNode[T]
		if cur.isLeafNode() {
			nl, err := t.cfg.Allocator.NewLeaf(t.baseMax)
			if err != nil {
				return chain, err
			}
			nn = nl
		} else {
			nb, err := t.cfg.Allocator.NewBranch(t.baseMax)
			if err != nil {
				return chain, err
			}
			nn = nb
		}
		chain.newNodes = append(chain.newNodes, nn)

		parent := cur.parentNode()
		if parent == nil {
			newRoot, err := t.cfg.Allocator.NewBranch(t.baseMax)
			if err != nil {
				return chain, err
			}
			chain.newRoot = newRoot
			break
		}
		cur = parent
	}
	return chain, nil
}

// bumpSizesFrom adds delta to the sizes[] entry that every ancestor of n
// keeps for n's slot, walking parent back-links. n itself already reflects
// its new item count; this only propagates that change upward.
func (t *Tree[T]) bumpSizesFrom(n treeNode[T], delta int) {
	for {
		parent := n.parentNode()
		if parent == nil {
			return
		}
		parent.sizes[n.slotIndex()] += delta
		n = parent
	}
}

// splitSegmentInsert splits a full segment (segMax elements) and inserts v,
// distributing the resulting segMax+1 elements floor/ceil between left and
// right.
func splitSegmentInsert[T any](left, right *segment[T], offset int, v T, segMax int) {
	leftLen := (segMax + 1) / 2
	if offset < leftLen {
		right.appendRange(left.buf[leftLen-1:])
		left.truncateBack(leftLen - 1)
		left.insertAt(offset, v)
	} else {
		right.appendRange(left.buf[leftLen:])
		left.truncateBack(leftLen)
		right.insertAt(offset-leftLen, v)
	}
}

// splitLeafInto splits a full leaf (baseMax children) and inserts newChild
// at insertSlot among the resulting baseMax+1 children, using the same
// floor/ceil distribution as the segment split.
func splitLeafInto[T any](left, right *leafNode[T], insertSlot int, newChild *segment[T], baseMax int) {
	leftLen := (baseMax + 1) / 2
	if insertSlot < leftLen {
		for left.slotCount() > leftLen-1 {
			c := left.removeChildAt(left.slotCount() - 1)
			right.insertChildAt(0, c)
		}
		left.insertChildAt(insertSlot, newChild)
	} else {
		for left.slotCount() > leftLen {
			c := left.removeChildAt(left.slotCount() - 1)
			right.insertChildAt(0, c)
		}
		right.insertChildAt(insertSlot-leftLen, newChild)
	}
}

// splitBranchInto is splitLeafInto's analogue one level up, over node
// children instead of segment children.
func splitBranchInto[T any](left, right *branchNode[T], insertSlot int, newChild treeNode[T], baseMax int) {
	leftLen := (baseMax + 1) / 2
	if insertSlot < leftLen {
		for left.slotCount() > leftLen-1 {
			c := left.removeChildAt(left.slotCount() - 1)
			right.insertChildAt(0, c)
		}
		left.insertChildAt(insertSlot, newChild)
	} else {
		for left.slotCount() > leftLen {
			c := left.removeChildAt(left.slotCount() - 1)
			right.insertChildAt(0, c)
		}
		right.insertChildAt(insertSlot-leftLen, newChild)
	}
}

// insertAt is the single-element insert engine: value v lands at logical
// position p. On failure the tree is left exactly as it was, satisfying a
// strong exception-safety contract.
func (t *Tree[T]) insertAt(p int, v T) error {
	v, err := t.cfg.Allocator.Construct(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConstructFailure, err)
	}

	if t.height == 0 {
		seg, err := t.cfg.Allocator.NewSegment(t.segMax)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAllocFailure, err)
		}
		seg.buf = append(seg.buf, v)
		t.root = seg
		t.height = 1
		t.size = 1
		t.generation++
		return nil
	}

	loc := t.findAt(p)

	if len(loc.seg.buf) < t.segMax {
		loc.seg.insertAt(loc.offset, v)
		if loc.leaf != nil {
			loc.leaf.touchSize(loc.slot)
			t.bumpSizesFrom(loc.leaf, 1)
		}
		t.size++
		t.generation++
		return nil
	}

	return t.insertWithSplit(loc, v)
}

// insertWithSplit handles the case where the target segment is already at
// SEG_MAX: it pre-allocates the whole split chain, then commits the
// cascade infallibly.
func (t *Tree[T]) insertWithSplit(loc locator[T], v T) error {
	chain, err := t.buildInsertChain(loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAllocFailure, err)
	}

	leftSeg := loc.seg
	rightSeg := chain.newSegment

	if loc.leaf == nil {
		// height == 1: the root segment splits; grow a leaf to hold both.
		// The leaf is allocated before the split so a failure leaves the
		// tree untouched.
		newLeaf, allocErr := t.cfg.Allocator.NewLeaf(t.baseMax)
		if allocErr != nil {
			return fmt.Errorf("%w: %v", ErrAllocFailure, allocErr)
		}
		splitSegmentInsert(leftSeg, rightSeg, loc.offset, v, t.segMax)
		newLeaf.insertChildAt(0, leftSeg)
		newLeaf.insertChildAt(1, rightSeg)
		t.root = newLeaf
		t.height = 2
		t.size++
		t.generation++
		Trc().Debugf("segtree: segment split grew height 1 -> 2")
		return nil
	}

	splitSegmentInsert(leftSeg, rightSeg, loc.offset, v, t.segMax)

	leaf := loc.leaf
	slot := loc.slot + 1
	leaf.touchSize(loc.slot)

	if leaf.slotCount() < t.baseMax {
		leaf.insertChildAt(slot, rightSeg)
		t.bumpSizesFrom(leaf, 1)
		t.size++
		t.generation++
		return nil
	}

	chainIdx := 0
	newLeaf := chain.newNodes[chainIdx].(*leafNode[T])
	chainIdx++
	splitLeafInto(leaf, newLeaf, slot, rightSeg, t.baseMax)

	var promoted treeNode[T] = newLeaf
	var cur treeNode[T] = leaf

	for {
		parent := cur.parentNode()
		if parent == nil {
			t.growRoot(chain.newRoot, cur, promoted)
			t.size++
			t.generation++
			Trc().Debugf("segtree: root split, height %d -> %d", t.height-1, t.height)
			return nil
		}
		parent.touchSize(cur.slotIndex())
		nextSlot := cur.slotIndex() + 1

		if parent.slotCount() < t.baseMax {
			parent.insertChildAt(nextSlot, promoted)
			t.bumpSizesFrom(parent, 1)
			t.size++
			t.generation++
			return nil
		}

		newBranch := chain.newNodes[chainIdx].(*branchNode[T])
		chainIdx++
		splitBranchInto(parent, newBranch, nextSlot, promoted, t.baseMax)
		promoted = newBranch
		cur = parent
	}
}

// growRoot consumes the chain's pre-allocated root branch to hold the old
// root (now split in two) as its first two children, incrementing height.
func (t *Tree[T]) growRoot(newRoot *branchNode[T], left, right treeNode[T]) {
	newRoot.insertChildAt(0, left)
	newRoot.insertChildAt(1, right)
	t.root = newRoot
	t.height++
}
