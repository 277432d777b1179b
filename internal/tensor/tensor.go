// Package tensor provides the dense float64 tensor type and the pure
// math functions used by the rax autodiff engine.
//
// Tensors are immutable in shape, row-major, and carry no graph state:
// everything in this package is a plain value computation. Gradient
// tracking lives in the autodiff package.
package tensor

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Tensor is a dense, row-major tensor of float64 values.
// A rank-zero Tensor (empty shape) holds a single scalar element.
type Tensor struct {
	shape Shape
	data  []float64
}

// New creates a tensor with the given shape backed by data.
// The data slice is used directly, not copied; its length must match
// the shape's element count.
func New(shape Shape, data []float64) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, errors.Wrapf(ErrShapeMismatch, "data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	return &Tensor{shape: shape.Clone(), data: data}, nil
}

// FromSlice creates a 1-D tensor that copies the given values.
// An empty slice yields a zero-element tensor; the reductions and
// exponential transforms reject those with ErrShapeMismatch.
func FromSlice(values []float64) *Tensor {
	data := make([]float64, len(values))
	copy(data, values)
	return &Tensor{shape: Shape{len(values)}, data: data}
}

// FromRows creates a 2-D tensor from row slices.
// All rows must have the same length.
func FromRows(rows [][]float64) (*Tensor, error) {
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "FromRows: no rows")
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "FromRows: zero-width rows")
	}
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(ErrShapeMismatch, "FromRows: row %d has %d columns, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return &Tensor{shape: Shape{len(rows), cols}, data: data}, nil
}

// Scalar creates a rank-zero tensor holding a single value.
func Scalar(v float64) *Tensor {
	return &Tensor{shape: Shape{}, data: []float64{v}}
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return &Tensor{shape: shape.Clone(), data: make([]float64, shape.NumElements())}
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return Full(shape, 1.0)
}

// Full creates a tensor filled with the given value.
func Full(shape Shape, v float64) *Tensor {
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = v
	}
	return &Tensor{shape: shape.Clone(), data: data}
}

// OnesLike creates a tensor of ones with the same shape as t.
func OnesLike(t *Tensor) *Tensor {
	return Ones(t.shape)
}

// ZerosLike creates a zero tensor with the same shape as t.
func ZerosLike(t *Tensor) *Tensor {
	return Zeros(t.shape)
}

// Rand creates a tensor with elements drawn uniformly from [min, max).
// The random source is injected so callers control determinism.
func Rand(shape Shape, min, max float64, rng *rand.Rand) *Tensor {
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = rng.Float64()*(max-min) + min
	}
	return &Tensor{shape: shape.Clone(), data: data}
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the backing slice. Mutating it mutates the tensor.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Item returns the single element of a scalar or one-element tensor.
func (t *Tensor) Item() (float64, error) {
	if len(t.data) != 1 {
		return 0, errors.Wrapf(ErrShapeMismatch, "Item: tensor with shape %v has %d elements, want 1", t.shape, len(t.data))
	}
	return t.data[0], nil
}

// At returns the element at row i, column j of a 2-D tensor.
func (t *Tensor) At(i, j int) (float64, error) {
	if t.Rank() != 2 {
		return 0, errors.Wrapf(ErrDimensionalityMismatch, "At: rank %d tensor, want 2", t.Rank())
	}
	if i < 0 || i >= t.shape[0] || j < 0 || j >= t.shape[1] {
		return 0, errors.Wrapf(ErrShapeMismatch, "At: index (%d, %d) out of range for shape %v", i, j, t.shape)
	}
	return t.data[i*t.shape[1]+j], nil
}

// Set writes the element at row i, column j of a 2-D tensor.
func (t *Tensor) Set(i, j int, v float64) error {
	if t.Rank() != 2 {
		return errors.Wrapf(ErrDimensionalityMismatch, "Set: rank %d tensor, want 2", t.Rank())
	}
	if i < 0 || i >= t.shape[0] || j < 0 || j >= t.shape[1] {
		return errors.Wrapf(ErrShapeMismatch, "Set: index (%d, %d) out of range for shape %v", i, j, t.shape)
	}
	t.data[i*t.shape[1]+j] = v
	return nil
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{shape: t.shape.Clone(), data: data}
}

// Equal reports whether two tensors have identical shape and elements.
func (t *Tensor) Equal(other *Tensor) bool {
	return t.shape.Equal(other.shape) && floats.Equal(t.data, other.data)
}

// EqualWithin reports whether two tensors have identical shape and
// elements within the given absolute tolerance.
func (t *Tensor) EqualWithin(other *Tensor, tol float64) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	return floats.EqualApprox(t.data, other.data, tol)
}

// String renders the tensor for debugging.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(shape=%v, data=%v)", t.shape, t.data)
}
