package segtree

// locator identifies a logical position p within the tree: the segment
// holding it, the offset within that segment, the segment's current
// length, and (unless the root is itself a segment) the owning leaf node
// and the slot under which that segment sits. It also records the logical
// index itself so iterator distance and Index() are O(1).
//
// An "end" locator is distinguished from a "last element" locator by having
// offset == segLen.
type locator[T any] struct {
	seg    *segment[T] // nil only for an empty tree
	offset int
	segLen int
	leaf   *leafNode[T] // nil iff the root is itself a segment (height == 1)
	slot   int
	index  int
}

// leftmostLeaf descends the leftmost spine from n to the leaf level.
func leftmostLeaf[T any](n treeNode[T]) *leafNode[T] {
	for {
		if l, ok := n.(*leafNode[T]); ok {
			return l
		}
		b := n.(*branchNode[T])
		assert(len(b.children) > 0, "leftmostLeaf: empty branch")
		n = b.children[0]
	}
}

// rightmostLeaf descends the rightmost spine from n to the leaf level.
func rightmostLeaf[T any](n treeNode[T]) *leafNode[T] {
	for {
		if l, ok := n.(*leafNode[T]); ok {
			return l
		}
		b := n.(*branchNode[T])
		assert(len(b.children) > 0, "rightmostLeaf: empty branch")
		n = b.children[len(b.children)-1]
	}
}

// locateInLeaf scans a leaf's subtree-size array left to right, subtracting
// until the remainder lands within a child.
func locateInLeaf[T any](l *leafNode[T], remaining, index int) locator[T] {
	for i, sz := range l.sizes {
		if remaining < sz {
			seg := l.children[i]
			return locator[T]{seg: seg, offset: remaining, segLen: len(seg.buf), leaf: l, slot: i, index: index}
		}
		remaining -= sz
	}
	assert(false, "locateInLeaf: index exceeds subtree size")
	return locator[T]{}
}

// locateInBranch scans a branch's subtree-size array and descends into the
// owning child, recursing until it reaches a leaf.
func locateInBranch[T any](b *branchNode[T], remaining, index int) locator[T] {
	for i, sz := range b.sizes {
		if remaining < sz {
			switch c := b.children[i].(type) {
			case *leafNode[T]:
				return locateInLeaf[T](c, remaining, index)
			case *branchNode[T]:
				return locateInBranch[T](c, remaining, index)
			}
		}
		remaining -= sz
	}
	assert(false, "locateInBranch: index exceeds subtree size")
	return locator[T]{}
}

// findAt produces the locator for logical position p in O(log n), with
// dedicated fast paths for 0, size-1 and size that avoid the scan.
func (t *Tree[T]) findAt(p int) locator[T] {
	assert(p >= 0 && p <= t.size, "findAt: index out of range")
	switch {
	case t.height == 0:
		return locator[T]{index: 0}
	case p == 0:
		return t.findFirst()
	case p == t.size:
		return t.findEnd()
	case p == t.size-1:
		return t.findLast()
	}
	switch root := t.root.(type) {
	case *segment[T]:
		return locator[T]{seg: root, offset: p, segLen: len(root.buf), index: p}
	case *leafNode[T]:
		return locateInLeaf[T](root, p, p)
	case *branchNode[T]:
		return locateInBranch[T](root, p, p)
	}
	panic("findAt: unreachable root shape")
}

// findFirst always descends the leftmost child without scanning.
func (t *Tree[T]) findFirst() locator[T] {
	if t.height == 0 {
		return locator[T]{index: 0}
	}
	if t.height == 1 {
		seg := t.root.(*segment[T])
		return locator[T]{seg: seg, offset: 0, segLen: len(seg.buf), index: 0}
	}
	var leaf *leafNode[T]
	if t.height == 2 {
		leaf = t.root.(*leafNode[T])
	} else {
		leaf = leftmostLeaf[T](t.root.(*branchNode[T]))
	}
	seg := leaf.children[0]
	return locator[T]{seg: seg, offset: 0, segLen: len(seg.buf), leaf: leaf, slot: 0, index: 0}
}

// findLast always descends the rightmost child and lands on the final
// element, without scanning.
func (t *Tree[T]) findLast() locator[T] {
	assert(t.size > 0, "findLast: empty tree")
	if t.height == 1 {
		seg := t.root.(*segment[T])
		return locator[T]{seg: seg, offset: len(seg.buf) - 1, segLen: len(seg.buf), index: t.size - 1}
	}
	var leaf *leafNode[T]
	if t.height == 2 {
		leaf = t.root.(*leafNode[T])
	} else {
		leaf = rightmostLeaf[T](t.root.(*branchNode[T]))
	}
	slot := len(leaf.children) - 1
	seg := leaf.children[slot]
	return locator[T]{seg: seg, offset: len(seg.buf) - 1, segLen: len(seg.buf), leaf: leaf, slot: slot, index: t.size - 1}
}

// findEnd always descends the rightmost child and lands one past the final
// element (offset == segLen), without scanning.
func (t *Tree[T]) findEnd() locator[T] {
	if t.height == 0 {
		return locator[T]{index: 0}
	}
	if t.height == 1 {
		seg := t.root.(*segment[T])
		return locator[T]{seg: seg, offset: len(seg.buf), segLen: len(seg.buf), index: t.size}
	}
	var leaf *leafNode[T]
	if t.height == 2 {
		leaf = t.root.(*leafNode[T])
	} else {
		leaf = rightmostLeaf[T](t.root.(*branchNode[T]))
	}
	slot := len(leaf.children) - 1
	seg := leaf.children[slot]
	return locator[T]{seg: seg, offset: len(seg.buf), segLen: len(seg.buf), leaf: leaf, slot: slot, index: t.size}
}
