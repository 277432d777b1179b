package autodiff

import (
	"github.com/pkg/errors"

	"github.com/rax-ml/rax/internal/tensor"
)

// Kind tags the mathematical operation that produced a node.
type Kind int

// Supported operation kinds.
const (
	KindAdd Kind = iota
	KindSub
	KindMul
	KindDiv
	KindMatMul
	KindNeg
	KindExp
	KindLog
	KindTanh
	KindReLU
	KindSum
	KindMean
)

// String returns the operation name.
func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindSub:
		return "sub"
	case KindMul:
		return "mul"
	case KindDiv:
		return "div"
	case KindMatMul:
		return "matmul"
	case KindNeg:
		return "neg"
	case KindExp:
		return "exp"
	case KindLog:
		return "log"
	case KindTanh:
		return "tanh"
	case KindReLU:
		return "relu"
	case KindSum:
		return "sum"
	case KindMean:
		return "mean"
	default:
		return "unknown"
	}
}

// record describes how an operation node was produced: the operation
// kind, the tape indices of its inputs, and the forward operand data
// its gradient rule needs. Inputs are indices, never node references,
// so a record cannot keep a node alive on its own or form a cycle.
// saved holds plain tensors copied at construction time; the rule
// never reads the input nodes' current values, which the optimizer may
// have rewritten by the time backward runs again.
type record struct {
	kind   Kind
	inputs []int
	saved  []*tensor.Tensor
	// inShape is the input shape for reductions, whose rules need only
	// the shape, not the values.
	inShape tensor.Shape
}

// inputGrads applies the operation's gradient rule: it maps the
// upstream gradient to one contribution per input, in input order.
// Each rule is the local derivative of the output with respect to that
// input, evaluated at the saved forward values, times the upstream
// gradient (chain rule).
func (r *record) inputGrads(g *tensor.Tensor) ([]*tensor.Tensor, error) {
	switch r.kind {
	case KindAdd:
		// d(a+b)/da = d(a+b)/db = 1
		return []*tensor.Tensor{g, g}, nil

	case KindSub:
		// d(a-b)/da = 1, d(a-b)/db = -1
		return []*tensor.Tensor{g, tensor.Neg(g)}, nil

	case KindMul:
		// d(a*b)/da = b, d(a*b)/db = a
		a, b := r.saved[0], r.saved[1]
		ga, err := tensor.Mul(g, b)
		if err != nil {
			return nil, err
		}
		gb, err := tensor.Mul(g, a)
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{ga, gb}, nil

	case KindDiv:
		// d(a/b)/da = 1/b, d(a/b)/db = -a/b²
		a, b := r.saved[0], r.saved[1]
		ga, err := tensor.Div(g, b)
		if err != nil {
			return nil, err
		}
		bb, err := tensor.Mul(b, b)
		if err != nil {
			return nil, err
		}
		num, err := tensor.Mul(g, a)
		if err != nil {
			return nil, err
		}
		gb, err := tensor.Div(num, bb)
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{ga, tensor.Neg(gb)}, nil

	case KindMatMul:
		// d(A@B)/dA = g @ Bᵀ, d(A@B)/dB = Aᵀ @ g
		a, b := r.saved[0], r.saved[1]
		bT, err := tensor.Transpose(b)
		if err != nil {
			return nil, err
		}
		ga, err := tensor.MatMul(g, bT)
		if err != nil {
			return nil, err
		}
		aT, err := tensor.Transpose(a)
		if err != nil {
			return nil, err
		}
		gb, err := tensor.MatMul(aT, g)
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{ga, gb}, nil

	case KindNeg:
		return []*tensor.Tensor{tensor.Neg(g)}, nil

	case KindExp:
		// d(exp(x))/dx = exp(x), the saved forward output.
		out := r.saved[0]
		gx, err := tensor.Mul(g, out)
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{gx}, nil

	case KindLog:
		// d(log(x))/dx = 1/x
		x := r.saved[0]
		gx, err := tensor.Div(g, x)
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{gx}, nil

	case KindTanh:
		// d(tanh(x))/dx = 1 - tanh(x)², from the saved forward output.
		out := r.saved[0]
		sq, err := tensor.Mul(out, out)
		if err != nil {
			return nil, err
		}
		one := tensor.OnesLike(out)
		deriv, err := tensor.Sub(one, sq)
		if err != nil {
			return nil, err
		}
		gx, err := tensor.Mul(g, deriv)
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{gx}, nil

	case KindReLU:
		// Gradient passes where the input was positive.
		x := r.saved[0]
		gx := g.Clone()
		xd, gd := x.Data(), gx.Data()
		for i := range gd {
			if xd[i] <= 0 {
				gd[i] = 0
			}
		}
		return []*tensor.Tensor{gx}, nil

	case KindSum:
		// Every element contributed with weight 1: spread the scalar
		// upstream gradient over the input shape.
		v, err := g.Item()
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{tensor.Full(r.inShape, v)}, nil

	case KindMean:
		v, err := g.Item()
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{tensor.Full(r.inShape, v/float64(r.inShape.NumElements()))}, nil

	default:
		return nil, errors.Errorf("no gradient rule for operation %q", r.kind)
	}
}
