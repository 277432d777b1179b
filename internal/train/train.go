// Package train ties the autodiff engine and an optimizer into one
// training step: backward from a loss node, gather leaf gradients,
// apply the parameter update, and clear gradients for the next pass.
package train

import (
	"k8s.io/klog/v2"

	"github.com/rax-ml/rax/internal/autodiff"
	"github.com/rax-ml/rax/internal/optim"
	"github.com/rax-ml/rax/internal/tensor"
)

// Step runs one training step on tape: propagate gradient backward
// from loss, flatten the parameter values and their accumulated
// gradients into vectors, let opt rewrite the values, write them back
// into the parameter leaves, and clear all gradients.
//
// Parameters that did not participate in the forward pass contribute
// zero gradients. The loss node's value before the update is returned
// so callers can monitor convergence.
func Step(tape *autodiff.Tape, loss autodiff.Handle, params []autodiff.Handle, opt optim.Optimizer) (float64, error) {
	lossValue, err := tape.Value(loss)
	if err != nil {
		return 0, err
	}
	lossItem, err := lossValue.Item()
	if err != nil {
		return 0, err
	}

	if err := tape.Backward(loss, nil); err != nil {
		return 0, err
	}

	// Flatten parameter values and gradients into matched vectors.
	total := 0
	values := make([]*tensor.Tensor, len(params))
	for i, p := range params {
		v, err := tape.Value(p)
		if err != nil {
			return 0, err
		}
		values[i] = v
		total += v.NumElements()
	}

	flatParams := make([]float64, 0, total)
	flatGrads := make([]float64, 0, total)
	for i, p := range params {
		flatParams = append(flatParams, values[i].Data()...)
		g, err := tape.Gradient(p)
		if err != nil {
			return 0, err
		}
		if g == nil {
			flatGrads = append(flatGrads, make([]float64, values[i].NumElements())...)
		} else {
			flatGrads = append(flatGrads, g.Data()...)
		}
	}

	if err := opt.Step(flatParams, flatGrads); err != nil {
		return 0, err
	}

	// Write the updated values back into the parameter leaves.
	off := 0
	for i := range params {
		n := values[i].NumElements()
		copy(values[i].Data(), flatParams[off:off+n])
		off += n
	}

	tape.ClearGradients()
	klog.V(2).Infof("train: step done, loss=%g, %d parameters", lossItem, total)
	return lossItem, nil
}
