package tensor

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Axis selects a dimension for reductions on 2-D tensors.
// Rows reduces down columns (result has one entry per column),
// Columns reduces across each row (result has one entry per row).
type Axis int

// Reduction axes for 2-D tensors.
const (
	Rows Axis = iota
	Columns
)

// checkNonEmpty rejects zero-element tensors, which the reductions and
// exponential transforms are undefined on.
func checkNonEmpty(op string, t *Tensor) error {
	if len(t.data) == 0 {
		return errors.Wrapf(ErrShapeMismatch, "%s: zero-element tensor with shape %v", op, t.shape)
	}
	return nil
}

// Sum returns the sum of all elements.
func Sum(t *Tensor) float64 {
	return floats.Sum(t.data)
}

// Mean returns the arithmetic mean of all elements.
func Mean(t *Tensor) float64 {
	return stat.Mean(t.data, nil)
}

// Max returns the largest element. A zero-element tensor is an
// ErrShapeMismatch.
func Max(t *Tensor) (float64, error) {
	if err := checkNonEmpty("Max", t); err != nil {
		return 0, err
	}
	return floats.Max(t.data), nil
}

// Min returns the smallest element. A zero-element tensor is an
// ErrShapeMismatch.
func Min(t *Tensor) (float64, error) {
	if err := checkNonEmpty("Min", t); err != nil {
		return 0, err
	}
	return floats.Min(t.data), nil
}

// mapAxis applies reduce to every row or column of a 2-D tensor and
// returns the 1-D result.
func mapAxis(op string, t *Tensor, axis Axis, reduce func([]float64) float64) (*Tensor, error) {
	if t.Rank() != 2 {
		return nil, errors.Wrapf(ErrDimensionalityMismatch, "%s: rank %d tensor, want 2", op, t.Rank())
	}
	if err := checkNonEmpty(op, t); err != nil {
		return nil, err
	}
	rows, cols := t.shape[0], t.shape[1]
	switch axis {
	case Rows:
		out := make([]float64, cols)
		col := make([]float64, rows)
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				col[i] = t.data[i*cols+j]
			}
			out[j] = reduce(col)
		}
		return FromSlice(out), nil
	case Columns:
		out := make([]float64, rows)
		for i := 0; i < rows; i++ {
			out[i] = reduce(t.data[i*cols : (i+1)*cols])
		}
		return FromSlice(out), nil
	default:
		return nil, errors.Wrapf(ErrDimensionalityMismatch, "%s: unknown axis %d", op, axis)
	}
}

// SumAxis sums a 2-D tensor along the given axis.
func SumAxis(t *Tensor, axis Axis) (*Tensor, error) {
	return mapAxis("SumAxis", t, axis, floats.Sum)
}

// MeanAxis averages a 2-D tensor along the given axis.
func MeanAxis(t *Tensor, axis Axis) (*Tensor, error) {
	return mapAxis("MeanAxis", t, axis, func(xs []float64) float64 { return stat.Mean(xs, nil) })
}

// MaxAxis takes the maximum of a 2-D tensor along the given axis.
func MaxAxis(t *Tensor, axis Axis) (*Tensor, error) {
	return mapAxis("MaxAxis", t, axis, floats.Max)
}

// MinAxis takes the minimum of a 2-D tensor along the given axis.
func MinAxis(t *Tensor, axis Axis) (*Tensor, error) {
	return mapAxis("MinAxis", t, axis, floats.Min)
}

// Softmax computes the softmax of a 1-D tensor.
// The maximum is subtracted before exponentiating so large inputs do
// not overflow.
func Softmax(t *Tensor) (*Tensor, error) {
	if t.Rank() != 1 {
		return nil, errors.Wrapf(ErrDimensionalityMismatch, "Softmax: rank %d tensor, want 1", t.Rank())
	}
	if err := checkNonEmpty("Softmax", t); err != nil {
		return nil, err
	}
	out := softmax1d(t.data)
	return FromSlice(out), nil
}

func softmax1d(xs []float64) []float64 {
	max := floats.Max(xs)
	out := make([]float64, len(xs))
	sum := 0.0
	for i, v := range xs {
		out[i] = math.Exp(v - max)
		sum += out[i]
	}
	floats.Scale(1/sum, out)
	return out
}

// SoftmaxAxis computes the softmax along an axis of a 2-D tensor.
func SoftmaxAxis(t *Tensor, axis Axis) (*Tensor, error) {
	if t.Rank() != 2 {
		return nil, errors.Wrapf(ErrDimensionalityMismatch, "SoftmaxAxis: rank %d tensor, want 2", t.Rank())
	}
	if err := checkNonEmpty("SoftmaxAxis", t); err != nil {
		return nil, err
	}
	out := t.Clone()
	rows, cols := t.shape[0], t.shape[1]
	switch axis {
	case Rows:
		col := make([]float64, rows)
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				col[i] = t.data[i*cols+j]
			}
			sm := softmax1d(col)
			for i := 0; i < rows; i++ {
				out.data[i*cols+j] = sm[i]
			}
		}
	case Columns:
		for i := 0; i < rows; i++ {
			copy(out.data[i*cols:(i+1)*cols], softmax1d(t.data[i*cols:(i+1)*cols]))
		}
	default:
		return nil, errors.Wrapf(ErrDimensionalityMismatch, "SoftmaxAxis: unknown axis %d", axis)
	}
	return out, nil
}

// LogSumExp computes log(Σ exp(x_i)) of a 1-D tensor, stabilized by
// shifting by the maximum.
func LogSumExp(t *Tensor) (float64, error) {
	if t.Rank() != 1 {
		return 0, errors.Wrapf(ErrDimensionalityMismatch, "LogSumExp: rank %d tensor, want 1", t.Rank())
	}
	if err := checkNonEmpty("LogSumExp", t); err != nil {
		return 0, err
	}
	return floats.LogSumExp(t.data), nil
}

// LogSumExpAxis computes the log-sum-exp along an axis of a 2-D tensor.
func LogSumExpAxis(t *Tensor, axis Axis) (*Tensor, error) {
	return mapAxis("LogSumExpAxis", t, axis, floats.LogSumExp)
}

// NormalizeMinMax rescales a 1-D tensor to the range [0, 1]. The input
// must not be constant: a zero span divides out to NaN.
func NormalizeMinMax(t *Tensor) (*Tensor, error) {
	if t.Rank() != 1 {
		return nil, errors.Wrapf(ErrDimensionalityMismatch, "NormalizeMinMax: rank %d tensor, want 1", t.Rank())
	}
	if err := checkNonEmpty("NormalizeMinMax", t); err != nil {
		return nil, err
	}
	min, max := floats.Min(t.data), floats.Max(t.data)
	span := max - min
	return Apply(t, func(v float64) float64 { return (v - min) / span }), nil
}

// NormalizeZScore rescales a 1-D tensor to zero mean and unit variance
// using the population standard deviation. The input must not be
// constant: a zero standard deviation divides out to NaN.
func NormalizeZScore(t *Tensor) (*Tensor, error) {
	if t.Rank() != 1 {
		return nil, errors.Wrapf(ErrDimensionalityMismatch, "NormalizeZScore: rank %d tensor, want 1", t.Rank())
	}
	if err := checkNonEmpty("NormalizeZScore", t); err != nil {
		return nil, err
	}
	mean := stat.Mean(t.data, nil)
	std := stat.PopStdDev(t.data, nil)
	return Apply(t, func(v float64) float64 { return (v - mean) / std }), nil
}
