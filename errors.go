package arena

import (
	"errors"
	"fmt"
)

// ErrInvalidMemoryAccess is returned by checked buffer accessors after the
// backing arena has been reset. It signals a lifetime bug in the caller: a
// handle outlived the allocation cycle it was created in.
var ErrInvalidMemoryAccess = errors.New("arena: invalid memory access")

// ErrUnsupportedOperation is returned for operations that have no consistent
// meaning on an autoscaling arena, such as checkpointing the allocation
// offset across multiple buffers.
var ErrUnsupportedOperation = errors.New("arena: unsupported operation")

func errSizeMismatch(from, to []int) error {
	return fmt.Errorf("arena: reshape %v to %v: element count mismatch", from, to)
}

func errSliceRank() error {
	return errors.New("arena: slice of rank-0 buffer")
}

func errSliceRange(i, j, n int) error {
	return fmt.Errorf("arena: slice range [%d:%d] out of bounds for dimension %d", i, j, n)
}
