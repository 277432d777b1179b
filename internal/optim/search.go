package optim

import (
	"math/rand"

	"github.com/pkg/errors"
)

// The search optimizers are uninformed: they ignore gradients entirely
// and move parameters by fixed-size probes. Step accepts a nil
// gradient vector; only the parameter vector is validated.

// RandomSearch perturbs every parameter by a uniform random offset in
// [-step, +step] on each Step.
type RandomSearch struct {
	step float64
	rng  *rand.Rand
}

// RandomSearchConfig holds configuration for RandomSearch.
type RandomSearchConfig struct {
	StepSize float64 // Perturbation half-width (default: 0.1)
	Rng      *rand.Rand
}

// NewRandomSearch creates a new RandomSearch optimizer. The random
// source is injected so callers control determinism.
func NewRandomSearch(config RandomSearchConfig) *RandomSearch {
	if config.StepSize == 0 {
		config.StepSize = 0.1
	}
	if config.Rng == nil {
		config.Rng = rand.New(rand.NewSource(1))
	}
	return &RandomSearch{step: config.StepSize, rng: config.Rng}
}

// Step perturbs each parameter within ±StepSize. grads may be nil.
func (r *RandomSearch) Step(params, _ []float64) error {
	if len(params) == 0 {
		return errors.Wrap(ErrEmptyParameterSet, "no parameters")
	}
	for i := range params {
		params[i] += (r.rng.Float64()*2 - 1) * r.step
	}
	return nil
}

// Reset is a no-op: RandomSearch keeps no state beyond its source.
func (r *RandomSearch) Reset() {}

// CoordinateSearch sweeps the parameter vector one dimension per Step,
// moving the current dimension by a fixed step in the current
// direction. After a full pass over all dimensions the direction
// reverses.
type CoordinateSearch struct {
	step  float64
	index int
	dir   float64
}

// CoordinateSearchConfig holds configuration for CoordinateSearch.
type CoordinateSearchConfig struct {
	StepSize float64 // Per-dimension step (default: 0.1)
}

// NewCoordinateSearch creates a new CoordinateSearch optimizer.
func NewCoordinateSearch(config CoordinateSearchConfig) *CoordinateSearch {
	if config.StepSize == 0 {
		config.StepSize = 0.1
	}
	return &CoordinateSearch{step: config.StepSize, dir: 1}
}

// Step moves the current dimension by dir*StepSize and advances to the
// next dimension, reversing direction after each full pass. grads may
// be nil.
func (c *CoordinateSearch) Step(params, _ []float64) error {
	if len(params) == 0 {
		return errors.Wrap(ErrEmptyParameterSet, "no parameters")
	}
	if c.index >= len(params) {
		// Parameter vector shrank since the last pass.
		c.index = 0
	}
	params[c.index] += c.dir * c.step
	c.index++
	if c.index == len(params) {
		c.index = 0
		c.dir = -c.dir
	}
	return nil
}

// Reset returns the sweep to the first dimension, forward direction.
func (c *CoordinateSearch) Reset() {
	c.index = 0
	c.dir = 1
}
