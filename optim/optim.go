// Copyright 2025 Rax ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/rax-ml/rax/internal/optim"
)

// Optimizer is the common interface for all update algorithms.
type Optimizer = optim.Optimizer

// ErrEmptyParameterSet indicates an empty or mismatched
// parameter/gradient vector.
var ErrEmptyParameterSet = optim.ErrEmptyParameterSet

// SGD (plain gradient descent)

// SGD implements plain stochastic gradient descent.
type SGD = optim.SGD

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD { return optim.NewSGD(config) }

// Momentum

// Momentum implements gradient descent with classical momentum.
type Momentum = optim.Momentum

// MomentumConfig holds configuration for the Momentum optimizer.
type MomentumConfig = optim.MomentumConfig

// NewMomentum creates a new Momentum optimizer.
func NewMomentum(config MomentumConfig) *Momentum { return optim.NewMomentum(config) }

// AdaGrad

// AdaGrad implements the adaptive-gradient optimizer.
type AdaGrad = optim.AdaGrad

// AdaGradConfig holds configuration for the AdaGrad optimizer.
type AdaGradConfig = optim.AdaGradConfig

// NewAdaGrad creates a new AdaGrad optimizer.
func NewAdaGrad(config AdaGradConfig) *AdaGrad { return optim.NewAdaGrad(config) }

// RMSprop

// RMSprop implements the RMSprop optimizer.
type RMSprop = optim.RMSprop

// RMSpropConfig holds configuration for the RMSprop optimizer.
type RMSpropConfig = optim.RMSpropConfig

// NewRMSprop creates a new RMSprop optimizer.
func NewRMSprop(config RMSpropConfig) *RMSprop { return optim.NewRMSprop(config) }

// Adam

// Adam implements the Adam optimizer.
type Adam = optim.Adam

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer.
func NewAdam(config AdamConfig) *Adam { return optim.NewAdam(config) }

// Gradient-free search

// RandomSearch perturbs parameters randomly within ±StepSize.
type RandomSearch = optim.RandomSearch

// RandomSearchConfig holds configuration for RandomSearch.
type RandomSearchConfig = optim.RandomSearchConfig

// NewRandomSearch creates a new RandomSearch optimizer.
func NewRandomSearch(config RandomSearchConfig) *RandomSearch {
	return optim.NewRandomSearch(config)
}

// CoordinateSearch sweeps one dimension per step with a fixed stride,
// reversing direction after each full pass.
type CoordinateSearch = optim.CoordinateSearch

// CoordinateSearchConfig holds configuration for CoordinateSearch.
type CoordinateSearchConfig = optim.CoordinateSearchConfig

// NewCoordinateSearch creates a new CoordinateSearch optimizer.
func NewCoordinateSearch(config CoordinateSearchConfig) *CoordinateSearch {
	return optim.NewCoordinateSearch(config)
}
