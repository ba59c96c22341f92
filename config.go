package segtree

import (
	"fmt"
	"unsafe"
)

const (
	// DefaultSegmentTarget is the byte budget a segment is sized against when
	// Config.SegmentTarget is left at zero.
	DefaultSegmentTarget = 512
	// DefaultBaseTarget is the byte budget a branch/leaf node is sized
	// against when Config.BaseTarget is left at zero.
	DefaultBaseTarget = 512

	// nodeHeaderSize approximates the fixed overhead of a node (parent
	// pointer, slot ordinal, length) that isn't part of the per-slot arrays,
	// used only to keep BASE_MAX's derivation honest about header cost.
	nodeHeaderSize = 24
)

// childSlotSize is the per-slot cost of a node's (size, child-pointer) pair.
var childSlotSize = int(unsafe.Sizeof(int(0)) + unsafe.Sizeof(uintptr(0)))

// Config configures a Tree's fanout and allocation strategy.
//
// Two compile/construction-time knobs, SegmentTarget and BaseTarget, are
// byte budgets from which SEG_MAX, SEG_MIN, BASE_MAX and BASE_MIN are
// derived once, in New.
type Config[T any] struct {
	// SegmentTarget is the byte budget for a segment. Zero means
	// DefaultSegmentTarget.
	SegmentTarget int
	// BaseTarget is the byte budget for a branch/leaf node. Zero means
	// DefaultBaseTarget.
	BaseTarget int
	// Allocator, if non-nil, is consulted for every segment/node allocation
	// and element construction; it has no release step. A nil Allocator
	// means the tree uses plain Go allocation (defaultAllocator, which never
	// fails).
	Allocator Allocator[T]
}

func (cfg Config[T]) normalized() Config[T] {
	if cfg.SegmentTarget <= 0 {
		cfg.SegmentTarget = DefaultSegmentTarget
	}
	if cfg.BaseTarget <= 0 {
		cfg.BaseTarget = DefaultBaseTarget
	}
	if cfg.Allocator == nil {
		cfg.Allocator = defaultAllocator[T]{}
	}
	return cfg
}

func (cfg Config[T]) validate() error {
	if cfg.SegmentTarget < 0 {
		return fmt.Errorf("%w: SegmentTarget must be >= 0", ErrInvalidConfig)
	}
	if cfg.BaseTarget < 0 {
		return fmt.Errorf("%w: BaseTarget must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// fanout derives SEG_MAX, SEG_MIN, BASE_MAX, BASE_MIN from the configured
// byte budgets and sizeof(T), per the formulas:
//
//	SEG_MAX  = max(1, segment_target / sizeof(T))
//	BASE_MAX = max(3, (base_target - node_header_size) / sizeof(child_slot))
//	SEG_MIN  = (SEG_MAX + 1) / 2
//	BASE_MIN = (BASE_MAX + 1) / 2
//
// SEG_MIN/BASE_MIN use truncating (floor) division, matching
// segmented_tree_seq.hpp's `segment_min = (segment_max + 1) / 2`: a split of
// a full node's SEG_MAX+1 (resp. BASE_MAX+1) items yields a floor half and a
// ceil half, and only the floor formulation guarantees the floor half still
// meets SEG_MIN — a ceiling formulation would make the smaller half
// systematically under-full by one.
func fanout[T any](cfg Config[T]) (segMax, segMin, baseMax, baseMin int) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize <= 0 {
		elemSize = 1
	}
	segMax = cfg.SegmentTarget / elemSize
	if segMax < 1 {
		segMax = 1
	}
	baseMax = (cfg.BaseTarget - nodeHeaderSize) / childSlotSize
	if baseMax < 3 {
		baseMax = 3
	}
	segMin = (segMax + 1) / 2
	baseMin = (baseMax + 1) / 2
	return
}
