// Copyright 2025 Rax ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides parameter-update algorithms for gradient-based
// training.
//
// # Overview
//
// This package contains:
//   - SGD: plain stochastic gradient descent
//   - Momentum: gradient descent with classical momentum
//   - AdaGrad: per-parameter adaptive learning rates
//   - RMSprop: AdaGrad with an exponentially decaying cache
//   - Adam: adaptive moment estimation with bias correction
//   - RandomSearch, CoordinateSearch: gradient-free search probes
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/rax-ml/rax/autodiff"
//	    "github.com/rax-ml/rax/optim"
//	    "github.com/rax-ml/rax/tensor"
//	)
//
//	func main() {
//	    tape := autodiff.NewTape()
//	    w := tape.Leaf(tensor.FromSlice([]float64{0.5, -0.3}), true)
//
//	    opt := optim.NewAdam(optim.AdamConfig{LR: 0.001})
//
//	    for step := 0; step < 100; step++ {
//	        loss := forward(tape, w)
//	        _ = tape.Backward(loss, nil)
//
//	        params, _ := tape.Value(w)
//	        grads, _ := tape.Gradient(w)
//	        _ = opt.Step(params.Data(), grads.Data())
//
//	        tape.ClearGradients()
//	    }
//	}
//
// Every optimizer exposes Reset, which clears running state (moment
// estimates, velocity, caches, step counters) so an instance can be
// reused for an unrelated parameter vector.
package optim
