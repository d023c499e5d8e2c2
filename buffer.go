package arena

import "unsafe"

// buffer is a single fixed-capacity memory region with a bump offset.
// It never grows and never fails: the owning AutoArena only calls allocate
// after fits has reported enough room. Violating that precondition is caught
// by the slice bounds check, but correctness is the arena's job, not ours.
type buffer struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
}

func newBuffer(capacity int) *buffer {
	return &buffer{buf: make([]byte, capacity)}
}

// fits reports whether n bytes (plus alignment padding) are available.
func (b *buffer) fits(n int) bool {
	return alignPtr(b.offset)+uintptr(n) <= uintptr(len(b.buf))
}

// allocate returns an n-byte region starting at the aligned offset and
// advances the offset past it. Precondition: fits(n) and n > 0.
func (b *buffer) allocate(n int) []byte {
	off := alignPtr(b.offset)
	start := int(off)
	b.offset = off + uintptr(n)
	// Use unsafe slice creation to avoid bounds checks
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.buf[start])), n)
}

// reset sets the offset back to zero. Memory is not zeroed.
func (b *buffer) reset() {
	b.offset = 0
}

func (b *buffer) used() int {
	return int(b.offset)
}

func (b *buffer) capacity() int {
	return len(b.buf)
}

// alignPtr aligns the offset up to pointer size alignment.
func alignPtr(off uintptr) uintptr {
	const align = unsafe.Sizeof(uintptr(0))
	mask := align - 1
	return (off + mask) & ^mask
}
