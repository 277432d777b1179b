package tensor

import "github.com/pkg/errors"

// Shape represents the dimensions of a tensor.
// An empty Shape describes a scalar (one element, rank zero).
type Shape []int

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return errors.Wrapf(ErrShapeMismatch, "invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastableTo reports whether a tensor of this shape can be broadcast
// to target following NumPy-style rules: shapes are compared element-wise
// from right to left, and dimensions are compatible if they are equal or
// the source dimension is 1. Missing leading dimensions are treated as 1.
func (s Shape) BroadcastableTo(target Shape) bool {
	if len(s) > len(target) {
		return false
	}
	for i := 0; i < len(s); i++ {
		sDim := s[len(s)-1-i]
		tDim := target[len(target)-1-i]
		if sDim != tDim && sDim != 1 {
			return false
		}
	}
	return true
}
