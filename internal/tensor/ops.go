package tensor

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// checkSameShape returns ErrShapeMismatch unless a and b share a shape.
func checkSameShape(op string, a, b *Tensor) error {
	if !a.shape.Equal(b.shape) {
		return errors.Wrapf(ErrShapeMismatch, "%s: %v vs %v", op, a.shape, b.shape)
	}
	return nil
}

// Add returns the element-wise sum a + b.
func Add(a, b *Tensor) (*Tensor, error) {
	if err := checkSameShape("add", a, b); err != nil {
		return nil, err
	}
	out := a.Clone()
	floats.Add(out.data, b.data)
	return out, nil
}

// Sub returns the element-wise difference a - b.
func Sub(a, b *Tensor) (*Tensor, error) {
	if err := checkSameShape("sub", a, b); err != nil {
		return nil, err
	}
	out := a.Clone()
	floats.Sub(out.data, b.data)
	return out, nil
}

// Mul returns the element-wise product a * b.
func Mul(a, b *Tensor) (*Tensor, error) {
	if err := checkSameShape("mul", a, b); err != nil {
		return nil, err
	}
	out := a.Clone()
	floats.Mul(out.data, b.data)
	return out, nil
}

// Div returns the element-wise quotient a / b.
func Div(a, b *Tensor) (*Tensor, error) {
	if err := checkSameShape("div", a, b); err != nil {
		return nil, err
	}
	out := a.Clone()
	floats.Div(out.data, b.data)
	return out, nil
}

// Neg returns the element-wise negation -t.
func Neg(t *Tensor) *Tensor {
	return Scale(t, -1)
}

// Scale returns t with every element multiplied by v.
func Scale(t *Tensor, v float64) *Tensor {
	out := t.Clone()
	floats.Scale(v, out.data)
	return out
}

// Apply returns a new tensor with f applied to every element.
func Apply(t *Tensor, f func(float64) float64) *Tensor {
	out := t.Clone()
	for i, v := range out.data {
		out.data[i] = f(v)
	}
	return out
}

// Exp returns the element-wise exponential.
func Exp(t *Tensor) *Tensor {
	return Apply(t, math.Exp)
}

// Log returns the element-wise natural logarithm.
func Log(t *Tensor) *Tensor {
	return Apply(t, math.Log)
}

// Tanh returns the element-wise hyperbolic tangent.
func Tanh(t *Tensor) *Tensor {
	return Apply(t, math.Tanh)
}

// ReLU returns the element-wise rectifier max(0, x).
func ReLU(t *Tensor) *Tensor {
	return Apply(t, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Accumulate adds other into t in place. Shapes must match.
// This is the accumulation primitive the backward engine uses to sum
// gradient contributions arriving at a shared node.
func (t *Tensor) Accumulate(other *Tensor) error {
	if err := checkSameShape("accumulate", t, other); err != nil {
		return err
	}
	floats.Add(t.data, other.data)
	return nil
}
