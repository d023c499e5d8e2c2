package arena

import "unsafe"

// Buf is a minimal dense array over memory obtained from an Allocator:
// a row-major backing slice plus dimensions. A Buf created by MakeChecked
// carries a Validity and refuses access after the backing arena resets;
// a Buf created by Make has no tracker and no such net.
//
// Buf holds its backing slice directly, so the memory (and, for arena
// regions, the arena buffer it lives in) stays reachable for as long as
// any Buf or view over it does.
type Buf[T any] struct {
	data     []T
	dims     []int
	validity *Validity // nil for untracked buffers
}

// Make allocates a zeroed buffer with the given dimensions through policy a.
// Panics if any dimension is negative.
func Make[T any](a Allocator, dims ...int) *Buf[T] {
	data := allocElems[T](a, numElems(dims))
	return &Buf[T]{data: data, dims: cloneDims(dims)}
}

// MakeChecked allocates a zeroed buffer whose accesses are validity-checked:
// once a's Reset invalidates the tracker, At and Set fail with
// ErrInvalidMemoryAccess instead of touching recycled memory.
// Panics if any dimension is negative.
func MakeChecked[T any](a CheckedAllocator, dims ...int) *Buf[T] {
	n := numElems(dims)
	var zero T
	// AllocateChecked zeroes the region itself, under the policy lock,
	// so creation never races a concurrent Reset.
	raw, v := a.AllocateChecked(n * int(unsafe.Sizeof(zero)))
	var data []T
	if n > 0 {
		data = unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)
	}
	return &Buf[T]{data: data, dims: cloneDims(dims), validity: v}
}

// Like allocates a buffer shaped like src through policy a. If dims are
// given they override src's dimensions; the element type always follows
// src. The source is inspected under its own validity read lock, even when
// it belongs to the same arena, so a stale template is reported rather than
// copied from.
//
// The result is checked when src is checked and a can issue tracked
// regions, untracked otherwise.
func Like[T any](a Allocator, src *Buf[T], dims ...int) (*Buf[T], error) {
	if src == nil {
		return Make[T](a, dims...), nil
	}
	var shape []int
	if err := src.view(func() { shape = cloneDims(src.dims) }); err != nil {
		return nil, err
	}
	if len(dims) > 0 {
		shape = dims
	}
	if src.validity != nil {
		if ca, ok := a.(CheckedAllocator); ok {
			return MakeChecked[T](ca, shape...), nil
		}
	}
	return Make[T](a, shape...), nil
}

// allocElems returns a zeroed n-element slice of T carved out of policy a.
func allocElems[T any](a Allocator, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	raw := a.Allocate(n * int(unsafe.Sizeof(zero)))
	clear(raw)
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)
}

// Dims returns a copy of the buffer's dimensions.
func (b *Buf[T]) Dims() []int {
	return cloneDims(b.dims)
}

// Len returns the total number of elements.
func (b *Buf[T]) Len() int {
	return len(b.data)
}

// Rank returns the number of dimensions.
func (b *Buf[T]) Rank() int {
	return len(b.dims)
}

// Checked reports whether accesses are validity-checked.
func (b *Buf[T]) Checked() bool {
	return b.validity != nil
}

// Valid reports whether the backing memory is still live. Untracked
// buffers are always considered valid.
func (b *Buf[T]) Valid() bool {
	return b.validity == nil || b.validity.Valid()
}

// At returns the element at the given index. For checked buffers the read
// happens under the tracker's read lock and fails with
// ErrInvalidMemoryAccess after the backing arena has reset.
// Panics if the index does not match the buffer's rank or bounds.
func (b *Buf[T]) At(idx ...int) (T, error) {
	i := b.index(idx)
	var out T
	err := b.view(func() { out = b.data[i] })
	return out, err
}

// Set stores val at the given index, with the same checking as At.
func (b *Buf[T]) Set(val T, idx ...int) error {
	i := b.index(idx)
	return b.view(func() { b.data[i] = val })
}

// Raw returns the backing slice without any validity checking. Callers
// holding a Raw slice across a Reset are on their own, exactly as with an
// unchecked allocation.
func (b *Buf[T]) Raw() []T {
	return b.data
}

// Reshape returns a view with new dimensions over the same memory. The
// element count must match. The view shares the original's tracker:
// invalidating one invalidates both, and a view can never outlive its
// source's validity.
func (b *Buf[T]) Reshape(dims ...int) (*Buf[T], error) {
	if numElems(dims) != len(b.data) {
		return nil, errSizeMismatch(b.dims, dims)
	}
	return &Buf[T]{data: b.data, dims: cloneDims(dims), validity: b.validity}, nil
}

// Slice returns a view over rows [i, j) along the first dimension, sharing
// the same memory and tracker as b.
func (b *Buf[T]) Slice(i, j int) (*Buf[T], error) {
	if b.Rank() == 0 {
		return nil, errSliceRank()
	}
	if i < 0 || j < i || j > b.dims[0] {
		return nil, errSliceRange(i, j, b.dims[0])
	}
	stride := 1
	for _, d := range b.dims[1:] {
		stride *= d
	}
	dims := append([]int{j - i}, b.dims[1:]...)
	return &Buf[T]{
		data:     b.data[i*stride : j*stride : j*stride],
		dims:     dims,
		validity: b.validity,
	}, nil
}

// view runs f under the tracker's read lock, or directly for untracked
// buffers.
func (b *Buf[T]) view(f func()) error {
	if b.validity == nil {
		f()
		return nil
	}
	return b.validity.guard(f)
}

// index flattens a row-major multi-index, panicking on rank or bounds
// violations the same way native slice indexing would.
func (b *Buf[T]) index(idx []int) int {
	if len(idx) != len(b.dims) {
		panic("arena: index rank mismatch")
	}
	i := 0
	for k, x := range idx {
		if x < 0 || x >= b.dims[k] {
			panic("arena: index out of range")
		}
		i = i*b.dims[k] + x
	}
	return i
}

func numElems(dims []int) int {
	n := 1
	for _, d := range dims {
		if d < 0 {
			panic("arena: negative dimension")
		}
		n *= d
	}
	return n
}

func cloneDims(dims []int) []int {
	return append([]int(nil), dims...)
}
