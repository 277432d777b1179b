package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"

	"github.com/rax-ml/rax/internal/tensor"
)

// TestNew_LengthMismatch tests that New rejects data of the wrong length.
func TestNew_LengthMismatch(t *testing.T) {
	_, err := tensor.New(tensor.Shape{2, 3}, []float64{1, 2, 3})
	if !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("New: got %v, want ErrShapeMismatch", err)
	}
}

// TestNew_InvalidShape tests that non-positive dimensions are rejected.
func TestNew_InvalidShape(t *testing.T) {
	_, err := tensor.New(tensor.Shape{2, 0}, nil)
	if !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("New: got %v, want ErrShapeMismatch", err)
	}
}

// TestScalar tests rank-zero tensors.
func TestScalar(t *testing.T) {
	s := tensor.Scalar(2.5)
	if s.Rank() != 0 {
		t.Errorf("Scalar rank: got %d, want 0", s.Rank())
	}
	if s.NumElements() != 1 {
		t.Errorf("Scalar elements: got %d, want 1", s.NumElements())
	}
	v, err := s.Item()
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if v != 2.5 {
		t.Errorf("Item: got %f, want 2.5", v)
	}
}

// TestItem_MultiElement tests that Item rejects larger tensors.
func TestItem_MultiElement(t *testing.T) {
	v := tensor.FromSlice([]float64{1, 2})
	if _, err := v.Item(); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("Item: got %v, want ErrShapeMismatch", err)
	}
}

// TestFromRows tests 2-D construction and element access.
func TestFromRows(t *testing.T) {
	m, err := tensor.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	if !m.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape: got %v, want [2 3]", m.Shape())
	}
	got, err := m.At(1, 2)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if got != 6 {
		t.Errorf("At(1,2): got %f, want 6", got)
	}
}

// TestFromRows_RaggedRows tests that ragged input is rejected.
func TestFromRows_RaggedRows(t *testing.T) {
	_, err := tensor.FromRows([][]float64{{1, 2}, {3}})
	if !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("FromRows: got %v, want ErrShapeMismatch", err)
	}
}

// TestFromRows_ZeroElements tests that empty and zero-width row sets
// are rejected at construction.
func TestFromRows_ZeroElements(t *testing.T) {
	if _, err := tensor.FromRows(nil); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("FromRows(nil): got %v, want ErrShapeMismatch", err)
	}
	if _, err := tensor.FromRows([][]float64{{}}); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("FromRows of zero-width rows: got %v, want ErrShapeMismatch", err)
	}
}

// TestFullOnesZeros tests the filled constructors.
func TestFullOnesZeros(t *testing.T) {
	shape := tensor.Shape{2, 2}
	if got := tensor.Sum(tensor.Zeros(shape)); got != 0 {
		t.Errorf("Zeros sum: got %f, want 0", got)
	}
	if got := tensor.Sum(tensor.Ones(shape)); got != 4 {
		t.Errorf("Ones sum: got %f, want 4", got)
	}
	if got := tensor.Sum(tensor.Full(shape, 2.5)); got != 10 {
		t.Errorf("Full sum: got %f, want 10", got)
	}
}

// TestRand tests the range and determinism of Rand.
func TestRand(t *testing.T) {
	r1 := tensor.Rand(tensor.Shape{100}, -2, 3, rand.New(rand.NewSource(7)))
	r2 := tensor.Rand(tensor.Shape{100}, -2, 3, rand.New(rand.NewSource(7)))
	if !r1.Equal(r2) {
		t.Error("Rand with the same seed should be deterministic")
	}
	for _, v := range r1.Data() {
		if v < -2 || v >= 3 {
			t.Fatalf("Rand value %f outside [-2, 3)", v)
		}
	}
}

// TestClone_Independent tests that Clone does not share storage.
func TestClone_Independent(t *testing.T) {
	a := tensor.FromSlice([]float64{1, 2, 3})
	b := a.Clone()
	b.Data()[0] = 99
	if a.Data()[0] != 1 {
		t.Error("Clone shares storage with the original")
	}
}

// TestAccumulate tests in-place summation.
func TestAccumulate(t *testing.T) {
	a := tensor.FromSlice([]float64{1, 2, 3})
	if err := a.Accumulate(tensor.FromSlice([]float64{10, 20, 30})); err != nil {
		t.Fatalf("Accumulate: %v", err)
	}
	want := tensor.FromSlice([]float64{11, 22, 33})
	if !a.Equal(want) {
		t.Errorf("Accumulate: got %v, want %v", a, want)
	}

	if err := a.Accumulate(tensor.FromSlice([]float64{1, 2})); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("Accumulate shape mismatch: got %v, want ErrShapeMismatch", err)
	}
}

// TestElementwise tests the binary element-wise operations.
func TestElementwise(t *testing.T) {
	a := tensor.FromSlice([]float64{6, 8, 10})
	b := tensor.FromSlice([]float64{2, 4, 5})

	tests := []struct {
		name string
		op   func(a, b *tensor.Tensor) (*tensor.Tensor, error)
		want []float64
	}{
		{"add", tensor.Add, []float64{8, 12, 15}},
		{"sub", tensor.Sub, []float64{4, 4, 5}},
		{"mul", tensor.Mul, []float64{12, 32, 50}},
		{"div", tensor.Div, []float64{3, 2, 2}},
	}
	for _, tc := range tests {
		got, err := tc.op(a, b)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !got.Equal(tensor.FromSlice(tc.want)) {
			t.Errorf("%s: got %v, want %v", tc.name, got.Data(), tc.want)
		}

		if _, err := tc.op(a, tensor.FromSlice([]float64{1, 2})); !errors.Is(err, tensor.ErrShapeMismatch) {
			t.Errorf("%s shape mismatch: got %v, want ErrShapeMismatch", tc.name, err)
		}
	}

	// Operands must be left untouched.
	if !a.Equal(tensor.FromSlice([]float64{6, 8, 10})) {
		t.Error("element-wise op mutated its operand")
	}
}
