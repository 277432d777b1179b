package autodiff

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/rax-ml/rax/internal/tensor"
)

// Backward propagates a gradient from root through the subgraph
// reachable backward from it, accumulating per-node gradients.
//
// seed is the upstream gradient applied to the root; nil means the
// conventional all-ones tensor matching the root's shape. Its shape
// must match the root's value shape.
//
// A node shared by several consumers must receive the sum of all their
// contributions before it forwards gradient to its own inputs. A plain
// depth-first walk can dispatch such a node too early, so the engine
// first counts, for every reachable node, its reachable consumers (the
// pending count) and then processes nodes in descending creation index,
// dispatching each one exactly once, only after its pending count has
// reached zero. Creation order guarantees every input index is
// strictly less than its consumer's index, which makes descending
// index order a valid reverse-topological order.
//
// Untracked nodes are excluded from the reachable subgraph entirely:
// no gradient is stored for them and contributions aimed at them are
// skipped. Calling Backward on an untracked root is a no-op.
//
// Running Backward again without ClearGradients adds into the existing
// accumulators; that is the same summation semantics the multi-consumer
// case uses, and call sites wanting fresh gradients clear first.
//
// The tape must not grow while Backward runs.
func (t *Tape) Backward(root Handle, seed *tensor.Tensor) error {
	rn, err := t.lookup(root)
	if err != nil {
		return err
	}
	if !rn.tracked {
		return nil
	}

	if seed == nil {
		seed = tensor.OnesLike(rn.value)
	} else if !seed.Shape().Equal(rn.value.Shape()) {
		return errors.Wrapf(tensor.ErrShapeMismatch, "backward: seed shape %v, root shape %v",
			seed.Shape(), rn.value.Shape())
	}

	reachable, pending := t.traversalState(root.index)
	klog.V(2).Infof("backward: root=%d nodes=%d", root.index, len(t.nodes))

	if err := accumulate(rn, seed); err != nil {
		return err
	}

	for i := root.index; i >= 0; i-- {
		if !reachable[i] {
			continue
		}
		if pending[i] != 0 {
			return errors.Errorf("backward: node %d dispatched with %d consumers outstanding", i, pending[i])
		}
		n := &t.nodes[i]
		if n.op == nil {
			// Leaf: keeps its accumulated gradient for the optimizer.
			continue
		}
		klog.V(3).Infof("backward: dispatch node %d op=%s", i, n.op.kind)
		grads, err := n.op.inputGrads(n.grad)
		if err != nil {
			return errors.Wrapf(err, "backward: node %d (%s)", i, n.op.kind)
		}
		for j, idx := range n.op.inputs {
			in := &t.nodes[idx]
			if !in.tracked {
				continue
			}
			if err := accumulate(in, grads[j]); err != nil {
				return errors.Wrapf(err, "backward: node %d input %d", i, j)
			}
			pending[idx]--
		}
	}
	return nil
}

// traversalState walks the graph backward from root and returns which
// nodes are reachable plus each reachable node's pending count: the
// number of reachable consumers that list it as an input. Untracked
// nodes never become reachable.
func (t *Tape) traversalState(root int) (reachable []bool, pending []int) {
	reachable = make([]bool, len(t.nodes))
	pending = make([]int, len(t.nodes))

	stack := []int{root}
	reachable[root] = true
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		op := t.nodes[i].op
		if op == nil {
			continue
		}
		for _, idx := range op.inputs {
			if !t.nodes[idx].tracked {
				continue
			}
			// Every reachable consumer edge counts, including repeated
			// uses of the same input by one operation.
			pending[idx]++
			if !reachable[idx] {
				reachable[idx] = true
				stack = append(stack, idx)
			}
		}
	}
	return reachable, pending
}

// accumulate adds a contribution into a node's gradient accumulator,
// creating it on first arrival. Contributions are summed, never
// overwritten.
func accumulate(n *node, contribution *tensor.Tensor) error {
	if n.grad == nil {
		n.grad = contribution.Clone()
		return nil
	}
	return n.grad.Accumulate(contribution)
}
