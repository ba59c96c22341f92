/*
Package segtree implements a segmented, counted B+ tree sequence container.

segtree is an in-memory, indexable random-access sequence that supports
insertion and deletion at any position in logarithmic time while preserving
cache-friendly iteration. It is a drop-in alternative to array-deques and
node-per-element lists for workloads that mix large sequential traversals
with frequent positional insertions and erasures: rope-like buffers, ordered
log reorderings, in-memory tables keyed by rank.

# Shape

The tree is rooted at a value whose dynamic shape depends on the tree's
height: empty (height 0), a single segment (height 1, a contiguous buffer of
elements), a leaf node of segments (height 2), or a branch node whose
children are leaves or further branches (height 3+). Every node carries a parallel array of per-child subtree sizes,
so positional lookup, amortized O(1) iterator advancement, and split/merge
cascades are all driven by an array scan rather than pointer chasing.

# Fixed capacities

Segment and node fanout are derived once, in New, from two byte budgets
(SegmentTarget, BaseTarget, both defaulting to 512) and the size of the
element type, following the same size-target-to-capacity formula a C++
allocator-aware container would use.

# Non-goals

segtree is not safe for concurrent mutation, is not persistent (no
structural sharing across versions), and does not provide stable references
across mutation: every insert/erase invalidates all outstanding iterators.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package segtree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// Trc traces to a global core-tracer, the same package-level tracer pattern
// used throughout this code base.
func Trc() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
