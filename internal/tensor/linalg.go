package tensor

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Reshape returns a tensor with the same elements and a new shape.
// The element counts must match.
func Reshape(t *Tensor, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != t.NumElements() {
		return nil, errors.Wrapf(ErrShapeMismatch, "reshape: %v (%d elements) to %v (%d elements)",
			t.shape, t.NumElements(), shape, shape.NumElements())
	}
	out := t.Clone()
	out.shape = shape.Clone()
	return out, nil
}

// Transpose permutes the tensor's axes. With no arguments the axis
// order is reversed (the matrix transpose for rank 2). An explicit
// permutation must mention every axis exactly once.
func Transpose(t *Tensor, axes ...int) (*Tensor, error) {
	rank := t.Rank()
	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if len(axes) != rank {
		return nil, errors.Wrapf(ErrDimensionalityMismatch, "transpose: %d axes for rank %d tensor", len(axes), rank)
	}
	seen := make([]bool, rank)
	for _, ax := range axes {
		if ax < 0 || ax >= rank || seen[ax] {
			return nil, errors.Wrapf(ErrDimensionalityMismatch, "transpose: invalid axis permutation %v", axes)
		}
		seen[ax] = true
	}

	newShape := make(Shape, rank)
	for i, ax := range axes {
		newShape[i] = t.shape[ax]
	}

	srcStrides := t.shape.ComputeStrides()
	out := Zeros(newShape)
	idx := make([]int, rank)
	for flat := 0; flat < t.NumElements(); flat++ {
		// idx is the destination coordinate; axis i of the output reads
		// axis axes[i] of the input.
		src := 0
		for i, ax := range axes {
			src += idx[i] * srcStrides[ax]
		}
		out.data[flat] = t.data[src]

		for i := rank - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < newShape[i] {
				break
			}
			idx[i] = 0
		}
	}
	return out, nil
}

// BroadcastTo expands a tensor to the target shape following NumPy
// rules: trailing dimensions must be equal or 1, missing leading
// dimensions are treated as 1.
func BroadcastTo(t *Tensor, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if !t.shape.BroadcastableTo(shape) {
		return nil, errors.Wrapf(ErrShapeMismatch, "broadcast: %v to %v", t.shape, shape)
	}

	srcRank, dstRank := t.Rank(), shape.Rank()
	srcStrides := t.shape.ComputeStrides()
	out := Zeros(shape)
	idx := make([]int, dstRank)
	for flat := 0; flat < out.NumElements(); flat++ {
		src := 0
		for i := 0; i < srcRank; i++ {
			// Align source dims with the trailing target dims; a
			// broadcast (size-1) dim always reads element 0.
			d := idx[dstRank-srcRank+i]
			if t.shape[i] == 1 {
				d = 0
			}
			src += d * srcStrides[i]
		}
		out.data[flat] = t.data[src]

		for i := dstRank - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < shape[i] {
				break
			}
			idx[i] = 0
		}
	}
	return out, nil
}

// asDense views a rank-2 tensor as a gonum matrix without copying.
func asDense(t *Tensor) *mat.Dense {
	return mat.NewDense(t.shape[0], t.shape[1], t.data)
}

// MatMul computes the matrix product of two 2-D tensors.
func MatMul(a, b *Tensor) (*Tensor, error) {
	if a.Rank() != 2 || b.Rank() != 2 {
		return nil, errors.Wrapf(ErrDimensionalityMismatch, "matmul: ranks %d and %d, want 2 and 2", a.Rank(), b.Rank())
	}
	if a.shape[1] != b.shape[0] {
		return nil, errors.Wrapf(ErrShapeMismatch, "matmul: inner dimensions %d and %d", a.shape[1], b.shape[0])
	}
	var out mat.Dense
	out.Mul(asDense(a), asDense(b))
	return New(Shape{a.shape[0], b.shape[1]}, out.RawMatrix().Data)
}

// Det computes the determinant of a square 2-D tensor.
// A singular matrix legitimately has determinant zero; singularity is
// only an error for Inverse.
func Det(t *Tensor) (float64, error) {
	if t.Rank() != 2 {
		return 0, errors.Wrapf(ErrDimensionalityMismatch, "det: rank %d tensor, want 2", t.Rank())
	}
	if t.shape[0] != t.shape[1] {
		return 0, errors.Wrapf(ErrShapeMismatch, "det: non-square shape %v", t.shape)
	}
	return mat.Det(asDense(t)), nil
}

// Inverse computes the inverse of a square 2-D tensor.
// Returns ErrSingularMatrix when the matrix is not invertible.
func Inverse(t *Tensor) (*Tensor, error) {
	if t.Rank() != 2 {
		return nil, errors.Wrapf(ErrDimensionalityMismatch, "inverse: rank %d tensor, want 2", t.Rank())
	}
	if t.shape[0] != t.shape[1] {
		return nil, errors.Wrapf(ErrShapeMismatch, "inverse: non-square shape %v", t.shape)
	}
	var inv mat.Dense
	if err := inv.Inverse(asDense(t)); err != nil {
		return nil, errors.Wrapf(ErrSingularMatrix, "inverse: %v", err)
	}
	return New(t.shape.Clone(), inv.RawMatrix().Data)
}
