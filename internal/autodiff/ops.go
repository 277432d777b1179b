package autodiff

import (
	"github.com/rax-ml/rax/internal/tensor"
)

// Operation constructors. Each computes the forward value with the
// tensor package, then records an operation node whose gradient rule
// closes over copies of the operand data it needs, never over the
// operand nodes themselves. The operation either fully records its
// node and returns a valid handle, or fails and appends nothing.

// binaryOperands resolves and validates the operands of an
// element-wise binary operation.
func (t *Tape) binaryOperands(a, b Handle) (va, vb *tensor.Tensor, err error) {
	na, err := t.lookup(a)
	if err != nil {
		return nil, nil, err
	}
	nb, err := t.lookup(b)
	if err != nil {
		return nil, nil, err
	}
	return na.value, nb.value, nil
}

// Add records c = a + b.
func (t *Tape) Add(a, b Handle) (Handle, error) {
	va, vb, err := t.binaryOperands(a, b)
	if err != nil {
		return Handle{}, err
	}
	out, err := tensor.Add(va, vb)
	if err != nil {
		return Handle{}, err
	}
	return t.append([]Handle{a, b}, out, record{kind: KindAdd}), nil
}

// Sub records c = a - b.
func (t *Tape) Sub(a, b Handle) (Handle, error) {
	va, vb, err := t.binaryOperands(a, b)
	if err != nil {
		return Handle{}, err
	}
	out, err := tensor.Sub(va, vb)
	if err != nil {
		return Handle{}, err
	}
	return t.append([]Handle{a, b}, out, record{kind: KindSub}), nil
}

// Mul records the element-wise product c = a * b. The rule needs both
// operand values, captured at construction time.
func (t *Tape) Mul(a, b Handle) (Handle, error) {
	va, vb, err := t.binaryOperands(a, b)
	if err != nil {
		return Handle{}, err
	}
	out, err := tensor.Mul(va, vb)
	if err != nil {
		return Handle{}, err
	}
	saved := []*tensor.Tensor{va.Clone(), vb.Clone()}
	return t.append([]Handle{a, b}, out, record{kind: KindMul, saved: saved}), nil
}

// Div records the element-wise quotient c = a / b.
func (t *Tape) Div(a, b Handle) (Handle, error) {
	va, vb, err := t.binaryOperands(a, b)
	if err != nil {
		return Handle{}, err
	}
	out, err := tensor.Div(va, vb)
	if err != nil {
		return Handle{}, err
	}
	saved := []*tensor.Tensor{va.Clone(), vb.Clone()}
	return t.append([]Handle{a, b}, out, record{kind: KindDiv, saved: saved}), nil
}

// MatMul records the matrix product c = a @ b of two 2-D nodes.
func (t *Tape) MatMul(a, b Handle) (Handle, error) {
	va, vb, err := t.binaryOperands(a, b)
	if err != nil {
		return Handle{}, err
	}
	out, err := tensor.MatMul(va, vb)
	if err != nil {
		return Handle{}, err
	}
	saved := []*tensor.Tensor{va.Clone(), vb.Clone()}
	return t.append([]Handle{a, b}, out, record{kind: KindMatMul, saved: saved}), nil
}

// Neg records c = -a.
func (t *Tape) Neg(a Handle) (Handle, error) {
	na, err := t.lookup(a)
	if err != nil {
		return Handle{}, err
	}
	return t.append([]Handle{a}, tensor.Neg(na.value), record{kind: KindNeg}), nil
}

// Exp records the element-wise exponential c = exp(a). The rule reuses
// the forward output, so that is what gets saved.
func (t *Tape) Exp(a Handle) (Handle, error) {
	na, err := t.lookup(a)
	if err != nil {
		return Handle{}, err
	}
	out := tensor.Exp(na.value)
	return t.append([]Handle{a}, out, record{kind: KindExp, saved: []*tensor.Tensor{out.Clone()}}), nil
}

// Log records the element-wise natural logarithm c = log(a).
func (t *Tape) Log(a Handle) (Handle, error) {
	na, err := t.lookup(a)
	if err != nil {
		return Handle{}, err
	}
	out := tensor.Log(na.value)
	saved := []*tensor.Tensor{na.value.Clone()}
	return t.append([]Handle{a}, out, record{kind: KindLog, saved: saved}), nil
}

// Tanh records the element-wise hyperbolic tangent.
func (t *Tape) Tanh(a Handle) (Handle, error) {
	na, err := t.lookup(a)
	if err != nil {
		return Handle{}, err
	}
	out := tensor.Tanh(na.value)
	return t.append([]Handle{a}, out, record{kind: KindTanh, saved: []*tensor.Tensor{out.Clone()}}), nil
}

// ReLU records the element-wise rectifier c = max(0, a).
func (t *Tape) ReLU(a Handle) (Handle, error) {
	na, err := t.lookup(a)
	if err != nil {
		return Handle{}, err
	}
	out := tensor.ReLU(na.value)
	saved := []*tensor.Tensor{na.value.Clone()}
	return t.append([]Handle{a}, out, record{kind: KindReLU, saved: saved}), nil
}

// Sum records the scalar sum of all elements of a.
func (t *Tape) Sum(a Handle) (Handle, error) {
	na, err := t.lookup(a)
	if err != nil {
		return Handle{}, err
	}
	out := tensor.Scalar(tensor.Sum(na.value))
	return t.append([]Handle{a}, out, record{kind: KindSum, inShape: na.value.Shape().Clone()}), nil
}

// Mean records the scalar mean of all elements of a.
func (t *Tape) Mean(a Handle) (Handle, error) {
	na, err := t.lookup(a)
	if err != nil {
		return Handle{}, err
	}
	out := tensor.Scalar(tensor.Mean(na.value))
	return t.append([]Handle{a}, out, record{kind: KindMean, inShape: na.value.Shape().Clone()}), nil
}
