// Copyright 2025 Rax ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train ties the autodiff engine and an optimizer into a
// single training step.
package train

import (
	"github.com/rax-ml/rax/internal/autodiff"
	"github.com/rax-ml/rax/internal/optim"
	"github.com/rax-ml/rax/internal/train"
)

// Step runs one training step: backward from loss, apply opt to the
// parameter leaves, clear gradients. Returns the loss value before the
// update.
func Step(tape *autodiff.Tape, loss autodiff.Handle, params []autodiff.Handle, opt optim.Optimizer) (float64, error) {
	return train.Step(tape, loss, params, opt)
}
