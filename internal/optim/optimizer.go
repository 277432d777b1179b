// Package optim implements parameter-update algorithms that consume
// gradients computed by the autodiff engine.
//
// Every optimizer updates a flat parameter vector in place from a
// matching gradient vector. Optimizers hold no graph state; running
// state (velocity, caches, moment estimates, step counters) is sized
// lazily on the first Step and dropped by Reset.
//
// Example:
//
//	opt := optim.NewAdam(optim.AdamConfig{LR: 0.001})
//	for step := 0; step < steps; step++ {
//	    grads := computeGradients(params)
//	    if err := opt.Step(params, grads); err != nil {
//	        return err
//	    }
//	}
package optim

import "github.com/pkg/errors"

// ErrEmptyParameterSet indicates an optimizer invoked with an empty
// parameter vector or with mismatched parameter/gradient lengths.
var ErrEmptyParameterSet = errors.New("empty parameter set")

// Optimizer is the interface all update algorithms implement.
type Optimizer interface {
	// Step applies one update to params in place, given gradients of
	// the same length. Gradient-free (search) optimizers accept a nil
	// gradient vector.
	Step(params, grads []float64) error

	// Reset clears all running state (moment estimates, velocity,
	// caches, step counters) back to empty. Required before reusing an
	// optimizer for an unrelated parameter vector: after Reset a Step
	// behaves exactly like a fresh instance's first Step.
	Reset()
}

// checkStep validates the parameter/gradient vectors of a
// gradient-based optimizer.
func checkStep(params, grads []float64) error {
	if len(params) == 0 {
		return errors.Wrap(ErrEmptyParameterSet, "no parameters")
	}
	if len(params) != len(grads) {
		return errors.Wrapf(ErrEmptyParameterSet, "%d parameters, %d gradients", len(params), len(grads))
	}
	return nil
}
