package segtree

import "math"

// Tree is a segmented, counted B+ tree sequence container: an in-memory,
// indexable sequence with O(log n) positional insert/erase and amortized
// O(1) iterator advancement.
//
// The zero value is not ready to use; construct one with New.
type Tree[T any] struct {
	cfg  Config[T]
	root subtree[T] // nil (height 0), *segment[T], *leafNode[T], or *branchNode[T]
	size int
	height int

	segMax, segMin int
	baseMax, baseMin int

	// generation counts structural mutations. Every outstanding Iterator
	// caches the generation it was born into and refuses to dereference
	// once it goes stale.
	generation int
}

// New constructs an empty Tree from cfg. An invalid cfg (negative byte
// budget) yields ErrInvalidConfig.
func New[T any](cfg Config[T]) (*Tree[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	segMax, segMin, baseMax, baseMin := fanout[T](cfg)
	return &Tree[T]{
		cfg:     cfg,
		segMax:  segMax,
		segMin:  segMin,
		baseMax: baseMax,
		baseMin: baseMin,
	}, nil
}

// FromSlice builds a Tree containing a copy of elems, in order.
func FromSlice[T any](cfg Config[T], elems []T) (*Tree[T], error) {
	t, err := New[T](cfg)
	if err != nil {
		return nil, err
	}
	for _, v := range elems {
		if err := t.PushBack(v); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Len reports the number of elements, O(1).
func (t *Tree[T]) Len() int { return t.size }

// IsEmpty reports whether the tree holds no elements, O(1).
func (t *Tree[T]) IsEmpty() bool { return t.size == 0 }

// Height reports the tree's height: 0 for empty, 1 when the root is a bare
// segment, 2+ otherwise.
func (t *Tree[T]) Height() int { return t.height }

// MaxSize reports the largest length the tree could theoretically reach.
// Segments and nodes are allocated as needed rather than drawn from a fixed
// backing array, so the only real ceiling is the logical index type itself.
func (t *Tree[T]) MaxSize() int { return math.MaxInt }

// At returns the element at logical position p. Panics if p is out of
// range; use Nth(p).Valid() to check a non-negative p first if it may be
// untrusted input.
func (t *Tree[T]) At(p int) T {
	if p < 0 || p >= t.size {
		panic(ErrOutOfRange)
	}
	loc := t.findAt(p)
	return loc.seg.buf[loc.offset]
}

// SetAt overwrites the element at logical position p in place.
func (t *Tree[T]) SetAt(p int, v T) {
	if p < 0 || p >= t.size {
		panic(ErrOutOfRange)
	}
	loc := t.findAt(p)
	loc.seg.buf[loc.offset] = v
}

// Front returns the first element. Panics if the tree is empty.
func (t *Tree[T]) Front() T {
	if t.size == 0 {
		panic(ErrOutOfRange)
	}
	loc := t.findFirst()
	return loc.seg.buf[loc.offset]
}

// Back returns the last element. Panics if the tree is empty.
func (t *Tree[T]) Back() T {
	if t.size == 0 {
		panic(ErrOutOfRange)
	}
	loc := t.findLast()
	return loc.seg.buf[loc.offset]
}

// Clear empties the tree. The previous root becomes unreachable and is
// left for the garbage collector; allocator-tracked resources, if any, are
// not explicitly released since this Allocator models allocate/construct
// only (see alloc.go).
func (t *Tree[T]) Clear() {
	t.root = nil
	t.size = 0
	t.height = 0
	t.generation++
}

// PushBack inserts v after the last element.
func (t *Tree[T]) PushBack(v T) error {
	return t.insertAt(t.size, v)
}

// PushFront inserts v before the first element.
func (t *Tree[T]) PushFront(v T) error {
	return t.insertAt(0, v)
}

// PopBack removes and returns the last element. Panics if the tree is
// empty.
func (t *Tree[T]) PopBack() T {
	if t.size == 0 {
		panic(ErrOutOfRange)
	}
	return t.eraseAt(t.size - 1)
}

// PopFront removes and returns the first element. Panics if the tree is
// empty.
func (t *Tree[T]) PopFront() T {
	if t.size == 0 {
		panic(ErrOutOfRange)
	}
	return t.eraseAt(0)
}

// Insert places v before logical position p, shifting everything at or
// after p back by one. p == Len() appends.
func (t *Tree[T]) Insert(p int, v T) error {
	if p < 0 || p > t.size {
		return ErrOutOfRange
	}
	return t.insertAt(p, v)
}

// InsertN inserts count copies of v before logical position p.
func (t *Tree[T]) InsertN(p int, count int, v T) error {
	if p < 0 || p > t.size {
		return ErrOutOfRange
	}
	for i := 0; i < count; i++ {
		if err := t.insertAt(p+i, v); err != nil {
			return err
		}
	}
	return nil
}

// InsertSeq inserts the elements of vs, in order, before logical position p.
func (t *Tree[T]) InsertSeq(p int, vs []T) error {
	if p < 0 || p > t.size {
		return ErrOutOfRange
	}
	for i, v := range vs {
		if err := t.insertAt(p+i, v); err != nil {
			return err
		}
	}
	return nil
}

// Erase removes the element at logical position p and returns it.
func (t *Tree[T]) Erase(p int) (T, error) {
	var zero T
	if p < 0 || p >= t.size {
		return zero, ErrOutOfRange
	}
	return t.eraseAt(p), nil
}

// EraseRange removes the count elements starting at logical position p.
// Erases one element at a time, from the back of the range toward p; each
// single erase locates its position from the root.
func (t *Tree[T]) EraseRange(p, count int) error {
	if p < 0 || count < 0 || p+count > t.size {
		return ErrOutOfRange
	}
	for i := p + count - 1; i >= p; i-- {
		t.eraseAt(i)
	}
	return nil
}

// Resize grows or shrinks the tree to n elements, padding new slots with
// fill when growing.
func (t *Tree[T]) Resize(n int, fill T) error {
	if n < 0 {
		return ErrOutOfRange
	}
	for t.size > n {
		t.eraseAt(t.size - 1)
	}
	for t.size < n {
		if err := t.insertAt(t.size, fill); err != nil {
			return err
		}
	}
	return nil
}

// Swap exchanges the contents of t and other in O(1). Both trees must
// share an allocator (by Allocator.Equal); otherwise ErrIncompatibleAllocator.
func (t *Tree[T]) Swap(other *Tree[T]) error {
	if !t.cfg.Allocator.Equal(other.cfg.Allocator) {
		return ErrIncompatibleAllocator
	}
	*t, *other = *other, *t
	t.generation++
	other.generation++
	return nil
}

// IndexOf returns it's logical position, O(1). it must belong to t.
func (t *Tree[T]) IndexOf(it *Iterator[T]) int {
	return it.Index()
}

// Clone returns a deep copy of t, built fresh element by element under t's
// own Config — a rebuild, not a structural share. O(n log n).
func (t *Tree[T]) Clone() (*Tree[T], error) {
	out, err := New[T](t.cfg)
	if err != nil {
		return nil, err
	}
	for it := t.Begin(); it.Valid(); it.Next() {
		if err := out.PushBack(it.Value()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CopyFrom replaces t's contents with a copy of src's. The shared prefix
// (the first min(t.Len(), src.Len()) elements) is overwritten in place via
// SetAt rather than erased and reinserted; only the excess tail is erased
// or appended.
func (t *Tree[T]) CopyFrom(src *Tree[T]) error {
	shared := t.size
	if src.size < shared {
		shared = src.size
	}
	s := src.Begin()
	for i := 0; i < shared; i++ {
		t.SetAt(i, s.Value())
		s.Next()
	}
	if t.size > shared {
		if err := t.EraseRange(shared, t.size-shared); err != nil {
			return err
		}
	}
	for i := shared; i < src.size; i++ {
		if err := t.insertAt(t.size, s.Value()); err != nil {
			return err
		}
		s.Next()
	}
	return nil
}

// AssignN replaces t's contents with count copies of v, reusing the shared
// prefix in place the same way CopyFrom does.
func (t *Tree[T]) AssignN(count int, v T) error {
	if count < 0 {
		return ErrOutOfRange
	}
	shared := t.size
	if count < shared {
		shared = count
	}
	for i := 0; i < shared; i++ {
		t.SetAt(i, v)
	}
	if t.size > shared {
		if err := t.EraseRange(shared, t.size-shared); err != nil {
			return err
		}
	}
	for t.size < count {
		if err := t.insertAt(t.size, v); err != nil {
			return err
		}
	}
	return nil
}

// AssignSeq replaces t's contents with a copy of vs, reusing the shared
// prefix in place the same way CopyFrom does.
func (t *Tree[T]) AssignSeq(vs []T) error {
	shared := t.size
	if len(vs) < shared {
		shared = len(vs)
	}
	for i := 0; i < shared; i++ {
		t.SetAt(i, vs[i])
	}
	if t.size > shared {
		if err := t.EraseRange(shared, t.size-shared); err != nil {
			return err
		}
	}
	for i := shared; i < len(vs); i++ {
		if err := t.insertAt(t.size, vs[i]); err != nil {
			return err
		}
	}
	return nil
}

// MoveFrom steals src's internal storage in O(1), leaving src empty. Both
// trees must share an allocator (by Allocator.Equal), the same compatibility
// rule Swap enforces; otherwise ErrIncompatibleAllocator.
func (t *Tree[T]) MoveFrom(src *Tree[T]) error {
	if !t.cfg.Allocator.Equal(src.cfg.Allocator) {
		return ErrIncompatibleAllocator
	}
	t.root = src.root
	t.size = src.size
	t.height = src.height
	t.generation++
	src.root = nil
	src.size = 0
	src.height = 0
	src.generation++
	return nil
}

// SegmentCount walks the tree and reports how many segments it holds, O(n
// in the number of segments, not elements). Diagnostic only; not on any
// hot path.
func (t *Tree[T]) SegmentCount() int {
	switch root := t.root.(type) {
	case nil:
		return 0
	case *segment[T]:
		return 1
	case treeNode[T]:
		return countSegments(root)
	default:
		return 0
	}
}

func countSegments[T any](n treeNode[T]) int {
	switch node := n.(type) {
	case *leafNode[T]:
		return node.slotCount()
	case *branchNode[T]:
		total := 0
		for _, child := range node.children {
			total += countSegments(child)
		}
		return total
	default:
		return 0
	}
}
