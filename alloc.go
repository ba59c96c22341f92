package segtree

// Allocator is the memory capability the tree consumes for every segment,
// node and element it creates: allocate, construct, and an equality
// predicate, with allocate/construct permitted to fail.
//
// Deallocate/destroy has no explicit method: values that fall out of the
// tree are simply dropped by the garbage collector, so Allocator only
// models the fallible allocate+construct side. Release therefore must
// never fail: the erase engine does not allocate and so cannot throw.
type Allocator[T any] interface {
	// NewSegment returns a fresh, empty segment with capacity for at least
	// segMax elements. An error leaves the caller's tree untouched.
	NewSegment(segMax int) (*segment[T], error)
	// NewLeaf returns a fresh, empty leaf node with capacity for at least
	// baseMax children.
	NewLeaf(baseMax int) (*leafNode[T], error)
	// NewBranch returns a fresh, empty branch node with capacity for at
	// least baseMax children.
	NewBranch(baseMax int) (*branchNode[T], error)
	// Construct copies v into the tree, returning the value to store. A
	// plain Go assignment never fails, so the default allocator always
	// succeeds; a custom Allocator models a failing copy/move constructor
	// here, independently of the structural allocations above. Called
	// before any structural mutation, so a failure leaves the tree
	// untouched.
	Construct(v T) (T, error)
	// Equal reports whether two allocators may share ownership of structures
	// across trees (used by Tree.Swap and Tree.MoveFrom; Tree.CopyFrom always
	// copies element by element and does not consult it).
	Equal(other Allocator[T]) bool
}

// defaultAllocator is the zero-value Allocator: plain Go heap allocation,
// never fails.
type defaultAllocator[T any] struct{}

func (defaultAllocator[T]) NewSegment(segMax int) (*segment[T], error) {
	return &segment[T]{buf: make([]T, 0, segMax)}, nil
}

func (defaultAllocator[T]) NewLeaf(baseMax int) (*leafNode[T], error) {
	return &leafNode[T]{
		children: make([]*segment[T], 0, baseMax),
		sizes:    make([]int, 0, baseMax),
	}, nil
}

func (defaultAllocator[T]) NewBranch(baseMax int) (*branchNode[T], error) {
	return &branchNode[T]{
		children: make([]treeNode[T], 0, baseMax),
		sizes:    make([]int, 0, baseMax),
	}, nil
}

func (defaultAllocator[T]) Construct(v T) (T, error) {
	return v, nil
}

func (defaultAllocator[T]) Equal(other Allocator[T]) bool {
	_, ok := other.(defaultAllocator[T])
	return ok
}
