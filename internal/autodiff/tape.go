// Package autodiff implements reverse-mode automatic differentiation
// over a dynamic computation graph.
//
// A Tape owns every node created during a forward pass. Nodes are
// stored in an append-only arena and referenced by Handle, so an
// operation record never holds a second strong owner of its inputs and
// the graph cannot form retain cycles. Because an operation can only
// consume nodes that already exist, creation order doubles as a
// topological order of the graph.
//
// Usage:
//
//	tape := autodiff.NewTape()
//	x := tape.Leaf(tensor.Scalar(3), true)
//	y := tape.Leaf(tensor.Scalar(4), true)
//	z, _ := tape.Mul(x, y)
//	_ = tape.Backward(z, nil)
//	gx, _ := tape.Gradient(x) // dz/dx = 4
package autodiff

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rax-ml/rax/internal/tensor"
)

// ErrInvalidHandle indicates a Handle that does not belong to the Tape
// it was presented to.
var ErrInvalidHandle = errors.New("invalid handle")

// Handle is a non-owning reference to a node on a specific Tape.
// The zero Handle is invalid.
type Handle struct {
	tape  uuid.UUID
	index int
}

// node is one unit of the computation graph: a value, an optional
// gradient accumulator, and the record of the operation that produced
// it (nil for leaves).
type node struct {
	value   *tensor.Tensor
	grad    *tensor.Tensor
	tracked bool
	op      *record
}

// Tape owns all nodes created during a forward pass and keeps them
// alive until gradients have been consumed. It is not safe for
// concurrent use; forward construction and backward propagation are
// sequential calls by design.
type Tape struct {
	id    uuid.UUID
	nodes []node
}

// NewTape creates an empty tape.
func NewTape() *Tape {
	return &Tape{
		id:    uuid.New(),
		nodes: make([]node, 0, 64),
	}
}

// Len returns the number of nodes on the tape.
func (t *Tape) Len() int {
	return len(t.nodes)
}

// Leaf appends a leaf node holding value. Tracked leaves participate
// in gradient computation; untracked leaves are constants.
func (t *Tape) Leaf(value *tensor.Tensor, tracked bool) Handle {
	t.nodes = append(t.nodes, node{value: value, tracked: tracked})
	return Handle{tape: t.id, index: len(t.nodes) - 1}
}

// append appends an operation node produced from inputs. Tracking is
// contagious: the output is tracked iff any input is. When no input is
// tracked the operation record is dropped and the result becomes a
// plain constant leaf, so no gradient machinery is retained for
// subgraphs that cannot need it.
func (t *Tape) append(inputs []Handle, forward *tensor.Tensor, op record) Handle {
	tracked := false
	for _, h := range inputs {
		if t.nodes[h.index].tracked {
			tracked = true
			break
		}
	}
	if !tracked {
		return t.Leaf(forward, false)
	}

	op.inputs = make([]int, len(inputs))
	for i, h := range inputs {
		op.inputs[i] = h.index
	}
	t.nodes = append(t.nodes, node{
		value:   forward,
		tracked: true,
		op:      &op,
	})
	return Handle{tape: t.id, index: len(t.nodes) - 1}
}

// lookup resolves a handle, rejecting handles from other tapes.
func (t *Tape) lookup(h Handle) (*node, error) {
	if h.tape != t.id || h.index < 0 || h.index >= len(t.nodes) {
		return nil, errors.Wrapf(ErrInvalidHandle, "handle {tape %s, index %d} not owned by tape %s (%d nodes)",
			h.tape, h.index, t.id, len(t.nodes))
	}
	return &t.nodes[h.index], nil
}

// Value returns the current value of the node behind h.
func (t *Tape) Value(h Handle) (*tensor.Tensor, error) {
	n, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	return n.value, nil
}

// Tracked reports whether the node behind h participates in gradient
// computation.
func (t *Tape) Tracked(h Handle) (bool, error) {
	n, err := t.lookup(h)
	if err != nil {
		return false, err
	}
	return n.tracked, nil
}

// Gradient returns the accumulated gradient of the node behind h, or
// nil if no contribution has arrived yet. The returned tensor is the
// live accumulator; callers that keep it across ClearGradients must
// clone it.
func (t *Tape) Gradient(h Handle) (*tensor.Tensor, error) {
	n, err := t.lookup(h)
	if err != nil {
		return nil, err
	}
	return n.grad, nil
}

// ClearGradients resets every node's gradient to absent. Call between
// training steps; without it a second Backward adds into the previous
// gradients.
func (t *Tape) ClearGradients() {
	for i := range t.nodes {
		t.nodes[i].grad = nil
	}
}

// Reset drops all nodes so the tape can be reused for a fresh forward
// pass. Handles issued before Reset become invalid.
func (t *Tape) Reset() {
	t.nodes = t.nodes[:0]
	t.id = uuid.New()
}
