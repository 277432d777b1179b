// Copyright 2025 Rax ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor is the public surface of the rax tensor library:
// a dense float64 tensor type plus the stateless math functions
// (reductions, softmax, normalization, shape ops, matrix product,
// determinant) used around the autodiff engine.
package tensor

import (
	"math/rand"

	"github.com/rax-ml/rax/internal/tensor"
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Tensor is a dense, row-major tensor of float64 values.
type Tensor = tensor.Tensor

// Axis selects a dimension for reductions on 2-D tensors.
type Axis = tensor.Axis

// Reduction axes for 2-D tensors.
const (
	Rows    = tensor.Rows
	Columns = tensor.Columns
)

// Sentinel errors surfaced by tensor operations.
var (
	ErrShapeMismatch          = tensor.ErrShapeMismatch
	ErrDimensionalityMismatch = tensor.ErrDimensionalityMismatch
	ErrSingularMatrix         = tensor.ErrSingularMatrix
)

// Constructors.

// New creates a tensor with the given shape backed by data.
func New(shape Shape, data []float64) (*Tensor, error) { return tensor.New(shape, data) }

// FromSlice creates a 1-D tensor that copies the given values.
func FromSlice(values []float64) *Tensor { return tensor.FromSlice(values) }

// FromRows creates a 2-D tensor from row slices.
func FromRows(rows [][]float64) (*Tensor, error) { return tensor.FromRows(rows) }

// Scalar creates a rank-zero tensor holding a single value.
func Scalar(v float64) *Tensor { return tensor.Scalar(v) }

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor { return tensor.Zeros(shape) }

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor { return tensor.Ones(shape) }

// Full creates a tensor filled with the given value.
func Full(shape Shape, v float64) *Tensor { return tensor.Full(shape, v) }

// Rand creates a tensor with elements drawn uniformly from [min, max).
func Rand(shape Shape, min, max float64, rng *rand.Rand) *Tensor {
	return tensor.Rand(shape, min, max, rng)
}

// OnesLike creates a ones tensor with the same shape as t.
func OnesLike(t *Tensor) *Tensor { return tensor.OnesLike(t) }

// ZerosLike creates a zeros tensor with the same shape as t.
func ZerosLike(t *Tensor) *Tensor { return tensor.ZerosLike(t) }

// Element-wise operations.

// Add returns the element-wise sum a + b.
func Add(a, b *Tensor) (*Tensor, error) { return tensor.Add(a, b) }

// Sub returns the element-wise difference a - b.
func Sub(a, b *Tensor) (*Tensor, error) { return tensor.Sub(a, b) }

// Mul returns the element-wise product a * b.
func Mul(a, b *Tensor) (*Tensor, error) { return tensor.Mul(a, b) }

// Div returns the element-wise quotient a / b.
func Div(a, b *Tensor) (*Tensor, error) { return tensor.Div(a, b) }

// Neg returns the element-wise negation -t.
func Neg(t *Tensor) *Tensor { return tensor.Neg(t) }

// Scale returns t with every element multiplied by v.
func Scale(t *Tensor, v float64) *Tensor { return tensor.Scale(t, v) }

// Apply returns t with f applied to every element.
func Apply(t *Tensor, f func(float64) float64) *Tensor { return tensor.Apply(t, f) }

// Exp returns the element-wise exponential.
func Exp(t *Tensor) *Tensor { return tensor.Exp(t) }

// Log returns the element-wise natural logarithm.
func Log(t *Tensor) *Tensor { return tensor.Log(t) }

// Tanh returns the element-wise hyperbolic tangent.
func Tanh(t *Tensor) *Tensor { return tensor.Tanh(t) }

// ReLU returns the element-wise rectifier max(0, x).
func ReLU(t *Tensor) *Tensor { return tensor.ReLU(t) }

// Reductions.

// Sum returns the sum of all elements.
func Sum(t *Tensor) float64 { return tensor.Sum(t) }

// Mean returns the arithmetic mean of all elements.
func Mean(t *Tensor) float64 { return tensor.Mean(t) }

// Max returns the largest element of a non-empty tensor.
func Max(t *Tensor) (float64, error) { return tensor.Max(t) }

// Min returns the smallest element of a non-empty tensor.
func Min(t *Tensor) (float64, error) { return tensor.Min(t) }

// SumAxis sums a 2-D tensor along the given axis.
func SumAxis(t *Tensor, axis Axis) (*Tensor, error) { return tensor.SumAxis(t, axis) }

// MeanAxis averages a 2-D tensor along the given axis.
func MeanAxis(t *Tensor, axis Axis) (*Tensor, error) { return tensor.MeanAxis(t, axis) }

// MaxAxis takes the maximum of a 2-D tensor along the given axis.
func MaxAxis(t *Tensor, axis Axis) (*Tensor, error) { return tensor.MaxAxis(t, axis) }

// MinAxis takes the minimum of a 2-D tensor along the given axis.
func MinAxis(t *Tensor, axis Axis) (*Tensor, error) { return tensor.MinAxis(t, axis) }

// Stabilized exponentials and normalization.

// Softmax computes the softmax of a 1-D tensor.
func Softmax(t *Tensor) (*Tensor, error) { return tensor.Softmax(t) }

// SoftmaxAxis computes the softmax along an axis of a 2-D tensor.
func SoftmaxAxis(t *Tensor, axis Axis) (*Tensor, error) { return tensor.SoftmaxAxis(t, axis) }

// LogSumExp computes log(Σ exp(x_i)) of a 1-D tensor.
func LogSumExp(t *Tensor) (float64, error) { return tensor.LogSumExp(t) }

// LogSumExpAxis computes the log-sum-exp along an axis of a 2-D tensor.
func LogSumExpAxis(t *Tensor, axis Axis) (*Tensor, error) { return tensor.LogSumExpAxis(t, axis) }

// NormalizeMinMax rescales a 1-D tensor to the range [0, 1].
func NormalizeMinMax(t *Tensor) (*Tensor, error) { return tensor.NormalizeMinMax(t) }

// NormalizeZScore rescales a 1-D tensor to zero mean and unit variance.
func NormalizeZScore(t *Tensor) (*Tensor, error) { return tensor.NormalizeZScore(t) }

// Shape manipulation and linear algebra.

// Reshape returns a tensor with the same elements and a new shape.
func Reshape(t *Tensor, shape Shape) (*Tensor, error) { return tensor.Reshape(t, shape) }

// Transpose permutes the tensor's axes (reversed when omitted).
func Transpose(t *Tensor, axes ...int) (*Tensor, error) { return tensor.Transpose(t, axes...) }

// BroadcastTo expands a tensor to the target shape following NumPy rules.
func BroadcastTo(t *Tensor, shape Shape) (*Tensor, error) { return tensor.BroadcastTo(t, shape) }

// MatMul computes the matrix product of two 2-D tensors.
func MatMul(a, b *Tensor) (*Tensor, error) { return tensor.MatMul(a, b) }

// Det computes the determinant of a square 2-D tensor.
func Det(t *Tensor) (float64, error) { return tensor.Det(t) }

// Inverse computes the inverse of a square 2-D tensor.
func Inverse(t *Tensor) (*Tensor, error) { return tensor.Inverse(t) }
