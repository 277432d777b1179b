package autodiff_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"github.com/rax-ml/rax/internal/autodiff"
	"github.com/rax-ml/rax/internal/tensor"
)

// gradOf fetches a gradient and fails the test on lookup errors.
func gradOf(t *testing.T, tape *autodiff.Tape, h autodiff.Handle) *tensor.Tensor {
	t.Helper()
	g, err := tape.Gradient(h)
	if err != nil {
		t.Fatalf("Gradient: %v", err)
	}
	return g
}

// scalarGrad fetches a gradient that must be a present scalar.
func scalarGrad(t *testing.T, tape *autodiff.Tape, h autodiff.Handle) float64 {
	t.Helper()
	g := gradOf(t, tape, h)
	if g == nil {
		t.Fatal("gradient absent")
	}
	v, err := g.Item()
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	return v
}

// TestAdd_Linearity tests that both addends receive the unchanged
// upstream gradient, for an arbitrary seed.
func TestAdd_Linearity(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(tensor.FromSlice([]float64{1, 2, 3}), true)
	b := tape.Leaf(tensor.FromSlice([]float64{4, 5, 6}), true)
	c, err := tape.Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	seed := tensor.FromSlice([]float64{0.5, -1, 2})
	if err := tape.Backward(c, seed); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	if g := gradOf(t, tape, a); !g.Equal(seed) {
		t.Errorf("gradient(a): got %v, want %v", g, seed)
	}
	if g := gradOf(t, tape, b); !g.Equal(seed) {
		t.Errorf("gradient(b): got %v, want %v", g, seed)
	}
}

// TestMul_ProductRule tests d(ab)/da = b and d(ab)/db = a.
func TestMul_ProductRule(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(tensor.Scalar(3), true)
	b := tape.Leaf(tensor.Scalar(4), true)
	c, err := tape.Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}

	if err := tape.Backward(c, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	if got := scalarGrad(t, tape, a); got != 4 {
		t.Errorf("gradient(a): got %f, want 4", got)
	}
	if got := scalarGrad(t, tape, b); got != 3 {
		t.Errorf("gradient(b): got %f, want 3", got)
	}
}

// TestSharedUse_Accumulates tests that a node consumed twice receives
// the sum of both contributions, not the last one.
func TestSharedUse_Accumulates(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Leaf(tensor.Scalar(5), true)
	y, err := tape.Add(x, x)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := tape.Backward(y, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	if got := scalarGrad(t, tape, x); got != 2 {
		t.Errorf("gradient(x): got %f, want 2", got)
	}
}

// TestSharedUse_Square tests x*x: both sides of the product are the
// same node, so dx(x²) = 2x.
func TestSharedUse_Square(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Leaf(tensor.Scalar(3), true)
	y, err := tape.Mul(x, x)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}

	if err := tape.Backward(y, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	if got := scalarGrad(t, tape, x); got != 6 {
		t.Errorf("gradient(x): got %f, want 6", got)
	}
}

// TestDiamond_PendingCounts builds a diamond: x feeds two intermediate
// products which are then summed. The shared source must be finalized
// only after both consumers have contributed.
func TestDiamond_PendingCounts(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Leaf(tensor.Scalar(2), true)
	a := tape.Leaf(tensor.Scalar(3), true)
	b := tape.Leaf(tensor.Scalar(7), true)

	left, err := tape.Mul(x, a) // 6
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	right, err := tape.Mul(x, b) // 14
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	root, err := tape.Add(left, right) // 20
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := tape.Backward(root, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	// d root/dx = a + b = 10, arriving as two contributions.
	if got := scalarGrad(t, tape, x); got != 10 {
		t.Errorf("gradient(x): got %f, want 10", got)
	}
	if got := scalarGrad(t, tape, a); got != 2 {
		t.Errorf("gradient(a): got %f, want 2", got)
	}
	if got := scalarGrad(t, tape, b); got != 2 {
		t.Errorf("gradient(b): got %f, want 2", got)
	}
}

// TestDeepSharing tests gradient flow through an intermediate node
// that is itself shared: y = x+x, z = y*y, so dz/dx = 2y*2 = 8x.
func TestDeepSharing(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Leaf(tensor.Scalar(3), true)
	y, err := tape.Add(x, x)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	z, err := tape.Mul(y, y)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}

	if err := tape.Backward(z, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	if got := scalarGrad(t, tape, x); got != 24 {
		t.Errorf("gradient(x): got %f, want 24 (= 8x at x=3)", got)
	}
	// The intermediate is finalized too: dz/dy = 2y = 12.
	if got := scalarGrad(t, tape, y); got != 12 {
		t.Errorf("gradient(y): got %f, want 12", got)
	}
}

// TestUntracked_Excluded tests that a result of two constants has no
// operation record and no gradient, and backward on it is a no-op.
func TestUntracked_Excluded(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(tensor.Scalar(2), false)
	b := tape.Leaf(tensor.Scalar(3), false)
	c, err := tape.Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := tape.Backward(c, nil); err != nil {
		t.Fatalf("Backward on untracked root: %v", err)
	}

	for name, h := range map[string]autodiff.Handle{"a": a, "b": b, "c": c} {
		if g := gradOf(t, tape, h); g != nil {
			t.Errorf("gradient(%s): got %v, want absent", name, g)
		}
	}
}

// TestUntracked_MixedInputs tests that an untracked operand of a
// tracked operation receives no gradient while the tracked one does.
func TestUntracked_MixedInputs(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Leaf(tensor.Scalar(5), true)
	c := tape.Leaf(tensor.Scalar(10), false)
	y, err := tape.Mul(x, c)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}

	tracked, err := tape.Tracked(y)
	if err != nil {
		t.Fatalf("Tracked: %v", err)
	}
	if !tracked {
		t.Fatal("tracking should be contagious")
	}

	if err := tape.Backward(y, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	if got := scalarGrad(t, tape, x); got != 10 {
		t.Errorf("gradient(x): got %f, want 10", got)
	}
	if g := gradOf(t, tape, c); g != nil {
		t.Errorf("gradient(c): got %v, want absent", g)
	}
}

// TestBackward_SeedShapeMismatch tests the seed shape check.
func TestBackward_SeedShapeMismatch(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Leaf(tensor.FromSlice([]float64{1, 2, 3}), true)
	err := tape.Backward(x, tensor.FromSlice([]float64{1, 2}))
	if !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("Backward: got %v, want ErrShapeMismatch", err)
	}
}

// TestForeignHandle tests that handles are bound to their tape.
func TestForeignHandle(t *testing.T) {
	tape1 := autodiff.NewTape()
	tape2 := autodiff.NewTape()
	h := tape1.Leaf(tensor.Scalar(1), true)

	if _, err := tape2.Value(h); !errors.Is(err, autodiff.ErrInvalidHandle) {
		t.Errorf("Value: got %v, want ErrInvalidHandle", err)
	}
	if err := tape2.Backward(h, nil); !errors.Is(err, autodiff.ErrInvalidHandle) {
		t.Errorf("Backward: got %v, want ErrInvalidHandle", err)
	}
	if _, err := tape2.Add(h, h); !errors.Is(err, autodiff.ErrInvalidHandle) {
		t.Errorf("Add: got %v, want ErrInvalidHandle", err)
	}
}

// TestRerun_Accumulates tests the documented semantics of running
// backward twice without clearing: gradients add up.
func TestRerun_Accumulates(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Leaf(tensor.Scalar(3), true)
	y, err := tape.Mul(x, x)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}

	if err := tape.Backward(y, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if err := tape.Backward(y, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if got := scalarGrad(t, tape, x); got != 12 {
		t.Errorf("gradient(x) after two runs: got %f, want 12", got)
	}

	tape.ClearGradients()
	if g := gradOf(t, tape, x); g != nil {
		t.Errorf("gradient(x) after clear: got %v, want absent", g)
	}
	if err := tape.Backward(y, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if got := scalarGrad(t, tape, x); got != 6 {
		t.Errorf("gradient(x) after clear and rerun: got %f, want 6", got)
	}
}

// TestOpConstruction_FailsAtomically tests that a failing constructor
// appends no node.
func TestOpConstruction_FailsAtomically(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(tensor.FromSlice([]float64{1, 2, 3}), true)
	b := tape.Leaf(tensor.FromSlice([]float64{1, 2}), true)
	before := tape.Len()

	if _, err := tape.Add(a, b); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Fatalf("Add: got %v, want ErrShapeMismatch", err)
	}
	if tape.Len() != before {
		t.Errorf("failed Add appended a node: %d -> %d", before, tape.Len())
	}
}

// TestSavedOperands tests that gradient rules use operand values
// captured at construction time, not the values at backward time.
func TestSavedOperands(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(tensor.Scalar(3), true)
	b := tape.Leaf(tensor.Scalar(4), true)
	c, err := tape.Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}

	// An optimizer rewriting the leaf in place must not change the
	// recorded rule.
	bv, err := tape.Value(b)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	bv.Data()[0] = 100

	if err := tape.Backward(c, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if got := scalarGrad(t, tape, a); got != 4 {
		t.Errorf("gradient(a): got %f, want 4 (value at construction)", got)
	}
}

// TestUnaryGradients tests the unary operation rules at fixed points.
func TestUnaryGradients(t *testing.T) {
	const x0 = 0.7
	tests := []struct {
		name string
		op   func(t *autodiff.Tape, h autodiff.Handle) (autodiff.Handle, error)
		want float64
	}{
		{"neg", (*autodiff.Tape).Neg, -1},
		{"exp", (*autodiff.Tape).Exp, math.Exp(x0)},
		{"log", (*autodiff.Tape).Log, 1 / x0},
		{"tanh", (*autodiff.Tape).Tanh, 1 - math.Tanh(x0)*math.Tanh(x0)},
		{"relu", (*autodiff.Tape).ReLU, 1},
	}
	for _, tc := range tests {
		tape := autodiff.NewTape()
		x := tape.Leaf(tensor.Scalar(x0), true)
		y, err := tc.op(tape, x)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if err := tape.Backward(y, nil); err != nil {
			t.Fatalf("%s backward: %v", tc.name, err)
		}
		if got := scalarGrad(t, tape, x); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("%s gradient: got %g, want %g", tc.name, got, tc.want)
		}
	}
}

// TestReLU_BlocksNegative tests that no gradient passes a negative input.
func TestReLU_BlocksNegative(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Leaf(tensor.FromSlice([]float64{-1, 2}), true)
	y, err := tape.ReLU(x)
	if err != nil {
		t.Fatalf("ReLU: %v", err)
	}
	if err := tape.Backward(y, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	g := gradOf(t, tape, x)
	if g == nil || !g.Equal(tensor.FromSlice([]float64{0, 1})) {
		t.Errorf("gradient(x): got %v, want [0 1]", g)
	}
}

// TestSumMean_Gradients tests the reduction rules.
func TestSumMean_Gradients(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Leaf(tensor.FromSlice([]float64{1, 2, 3, 4}), true)
	s, err := tape.Sum(x)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	sv, err := tape.Value(s)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v, _ := sv.Item(); v != 10 {
		t.Errorf("sum value: got %f, want 10", v)
	}
	if err := tape.Backward(s, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if g := gradOf(t, tape, x); g == nil || !g.Equal(tensor.FromSlice([]float64{1, 1, 1, 1})) {
		t.Errorf("sum gradient: got %v, want ones", gradOf(t, tape, x))
	}

	tape = autodiff.NewTape()
	x = tape.Leaf(tensor.FromSlice([]float64{1, 2, 3, 4}), true)
	m, err := tape.Mean(x)
	if err != nil {
		t.Fatalf("Mean: %v", err)
	}
	if err := tape.Backward(m, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if g := gradOf(t, tape, x); g == nil || !g.Equal(tensor.Full(tensor.Shape{4}, 0.25)) {
		t.Errorf("mean gradient: got %v, want 0.25s", g)
	}
}

// TestMatMul_Gradients tests the matrix product rules against
// hand-computed values.
func TestMatMul_Gradients(t *testing.T) {
	tape := autodiff.NewTape()
	av, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
	bv, _ := tensor.FromRows([][]float64{{5, 6}, {7, 8}})
	a := tape.Leaf(av, true)
	b := tape.Leaf(bv, true)
	c, err := tape.MatMul(a, b)
	if err != nil {
		t.Fatalf("MatMul: %v", err)
	}

	if err := tape.Backward(c, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}

	// With seed = ones: dA = ones @ Bᵀ, dB = Aᵀ @ ones.
	wantA, _ := tensor.FromRows([][]float64{{11, 15}, {11, 15}})
	wantB, _ := tensor.FromRows([][]float64{{4, 4}, {6, 6}})
	if g := gradOf(t, tape, a); g == nil || !g.Equal(wantA) {
		t.Errorf("gradient(A): got %v, want %v", g, wantA)
	}
	if g := gradOf(t, tape, b); g == nil || !g.Equal(wantB) {
		t.Errorf("gradient(B): got %v, want %v", g, wantB)
	}
}

// TestChain_Expression tests a small composite expression:
// f = (x*y + x) with x=2, y=3 → df/dx = y+1 = 4, df/dy = x = 2.
func TestChain_Expression(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Leaf(tensor.Scalar(2), true)
	y := tape.Leaf(tensor.Scalar(3), true)

	xy, err := tape.Mul(x, y)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	f, err := tape.Add(xy, x)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := tape.Backward(f, nil); err != nil {
		t.Fatalf("Backward: %v", err)
	}
	if got := scalarGrad(t, tape, x); got != 4 {
		t.Errorf("df/dx: got %f, want 4", got)
	}
	if got := scalarGrad(t, tape, y); got != 2 {
		t.Errorf("df/dy: got %f, want 2", got)
	}
}

// TestNoGradientAllocation_Untracked tests that recording with only
// untracked inputs stores no operation record (the node is a plain
// constant leaf).
func TestNoGradientAllocation_Untracked(t *testing.T) {
	tape := autodiff.NewTape()
	a := tape.Leaf(tensor.Scalar(1), false)
	b := tape.Leaf(tensor.Scalar(2), false)
	c, err := tape.Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	tracked, err := tape.Tracked(c)
	if err != nil {
		t.Fatalf("Tracked: %v", err)
	}
	if tracked {
		t.Error("result of two constants should be untracked")
	}
	v, err := tape.Value(c)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if got, _ := v.Item(); got != 2 {
		t.Errorf("forward value: got %f, want 2", got)
	}
}
