package segtree

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Check validates every structural invariant the container relies on: size
// accounting, node/segment occupancy, parent back-links, and uniform
// segment depth. It is meant for tests and for the CLI driver's fuzz mode,
// not the hot path.
func (t *Tree[T]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.root == nil {
		if t.height != 0 || t.size != 0 {
			return fmt.Errorf("%w: empty tree must have height=0, size=0", ErrInvalidConfig)
		}
		return nil
	}
	if t.height <= 0 {
		return fmt.Errorf("%w: non-empty tree must have height > 0", ErrInvalidConfig)
	}

	if t.height == 1 {
		seg, ok := t.root.(*segment[T])
		if !ok {
			return fmt.Errorf("%w: height 1 but root is not a segment", ErrInvalidConfig)
		}
		if seg.parent != nil {
			return fmt.Errorf("%w: root segment has a parent back-link", ErrInvalidConfig)
		}
		if len(seg.buf) < 1 || len(seg.buf) > t.segMax {
			return fmt.Errorf("%w: root segment length %d out of [1,%d]", ErrInvalidConfig, len(seg.buf), t.segMax)
		}
		if len(seg.buf) != t.size {
			return fmt.Errorf("%w: size mismatch (%d != %d)", ErrInvalidConfig, len(seg.buf), t.size)
		}
		return nil
	}

	root, ok := t.root.(treeNode[T])
	if !ok {
		return fmt.Errorf("%w: root has unexpected shape for height %d", ErrInvalidConfig, t.height)
	}
	if root.parentNode() != nil {
		return fmt.Errorf("%w: root has a parent back-link", ErrInvalidConfig)
	}
	if root.slotCount() < 2 || root.slotCount() > t.baseMax {
		return fmt.Errorf("%w: root occupancy %d out of [2,%d]", ErrInvalidConfig, root.slotCount(), t.baseMax)
	}
	total, height, err := t.checkNode(root, true)
	if err != nil {
		return err
	}
	if height != t.height {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrInvalidConfig, height, t.height)
	}
	if total != t.size {
		return fmt.Errorf("%w: size mismatch (%d != %d)", ErrInvalidConfig, total, t.size)
	}
	return nil
}

func (t *Tree[T]) checkNode(n treeNode[T], isRoot bool) (items int, height int, err error) {
	if !isRoot {
		if n.slotCount() < t.baseMin || n.slotCount() > t.baseMax {
			return 0, 0, fmt.Errorf("%w: node occupancy %d out of [%d,%d]", ErrInvalidConfig, n.slotCount(), t.baseMin, t.baseMax)
		}
	}
	switch node := n.(type) {
	case *leafNode[T]:
		total := 0
		for i, seg := range node.children {
			if seg == nil {
				return 0, 0, fmt.Errorf("%w: nil segment at slot %d", ErrInvalidConfig, i)
			}
			if seg.parent != node || seg.slot != i {
				return 0, 0, fmt.Errorf("%w: segment back-link mismatch at slot %d", ErrInvalidConfig, i)
			}
			// Segments are never the tree root once a leaf node exists
			// (height >= 2), regardless of whether that leaf is itself the
			// root node, so SEG_MIN always applies here.
			if len(seg.buf) < t.segMin || len(seg.buf) > t.segMax {
				return 0, 0, fmt.Errorf("%w: segment length %d out of [%d,%d]", ErrInvalidConfig, len(seg.buf), t.segMin, t.segMax)
			}
			if node.sizes[i] != len(seg.buf) {
				return 0, 0, fmt.Errorf("%w: leaf sizes[%d]=%d != segment length %d", ErrInvalidConfig, i, node.sizes[i], len(seg.buf))
			}
			total += len(seg.buf)
		}
		// A leaf plus its segments spans two levels, matching Tree.height's
		// count (a root leaf means height 2).
		return total, 2, nil
	case *branchNode[T]:
		var total, childHeight int
		for i, child := range node.children {
			if child == nil {
				return 0, 0, fmt.Errorf("%w: nil child at slot %d", ErrInvalidConfig, i)
			}
			if child.parentNode() != node || child.slotIndex() != i {
				return 0, 0, fmt.Errorf("%w: child back-link mismatch at slot %d", ErrInvalidConfig, i)
			}
			cItems, cHeight, cErr := t.checkNode(child, false)
			if cErr != nil {
				return 0, 0, cErr
			}
			if node.sizes[i] != cItems {
				return 0, 0, fmt.Errorf("%w: branch sizes[%d]=%d != subtree items %d", ErrInvalidConfig, i, node.sizes[i], cItems)
			}
			total += cItems
			if i == 0 {
				childHeight = cHeight
			} else if cHeight != childHeight {
				return 0, 0, fmt.Errorf("%w: non-uniform subtree heights", ErrInvalidConfig)
			}
		}
		return total, childHeight + 1, nil
	default:
		return 0, 0, fmt.Errorf("%w: unrecognized node type %T", ErrInvalidConfig, n)
	}
}

// DebugDump renders the tree's shape (segment lengths, subtree sizes,
// height) as an indented text tree, for test failure messages and the CLI
// driver's dump subcommand.
func (t *Tree[T]) DebugDump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tree(size=%d, height=%d, segMax=%d/%d, baseMax=%d/%d)\n",
		t.size, t.height, t.segMin, t.segMax, t.baseMin, t.baseMax)
	switch root := t.root.(type) {
	case nil:
		b.WriteString("  (empty)\n")
	case *segment[T]:
		dumpSegment(&b, root, 1)
	case treeNode[T]:
		dumpNode(&b, root, 1)
	}
	return b.String()
}

func dumpSegment[T any](b *strings.Builder, seg *segment[T], depth int) {
	fmt.Fprintf(b, "%ssegment len=%d cap=%d %s\n", strings.Repeat("  ", depth), len(seg.buf), cap(seg.buf), spew.Sdump(seg.buf))
}

func dumpNode[T any](b *strings.Builder, n treeNode[T], depth int) {
	indent := strings.Repeat("  ", depth)
	switch node := n.(type) {
	case *leafNode[T]:
		fmt.Fprintf(b, "%sleaf slots=%d sizes=%v\n", indent, node.slotCount(), node.sizes)
		for _, seg := range node.children {
			dumpSegment(b, seg, depth+1)
		}
	case *branchNode[T]:
		fmt.Fprintf(b, "%sbranch slots=%d sizes=%v\n", indent, node.slotCount(), node.sizes)
		for _, child := range node.children {
			dumpNode(b, child, depth+1)
		}
	}
}
