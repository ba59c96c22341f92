package segtree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("segtree: invalid configuration")
	// ErrOutOfRange signals an invalid positional index passed to At/nth/etc.
	ErrOutOfRange = errors.New("segtree: index out of range")
	// ErrAllocFailure signals that a structural mutation could not obtain the
	// memory it needed. The tree is left in its pre-call state.
	ErrAllocFailure = errors.New("segtree: allocation failure")
	// ErrConstructFailure signals that constructing/copying an element failed
	// mid-mutation. The tree is left in its pre-call state for single-element
	// operations.
	ErrConstructFailure = errors.New("segtree: element construction failure")
	// ErrIncompatibleAllocator signals an attempt to combine two trees whose
	// allocators are not the same (Swap, MoveFrom).
	ErrIncompatibleAllocator = errors.New("segtree: incompatible allocators")
)
