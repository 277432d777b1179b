// Copyright 2025 Rax ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// A Tape records every value created during the forward pass as a node
// of a dynamic computation graph. Backward propagates a gradient from
// a root node to every tracked node that fed it, summing contributions
// where a node is shared by several consumers.
//
// Example:
//
//	tape := autodiff.NewTape()
//	x := tape.Leaf(tensor.Scalar(3), true)
//	y := tape.Leaf(tensor.Scalar(4), true)
//	z, _ := tape.Mul(x, y)
//
//	_ = tape.Backward(z, nil)
//	gx, _ := tape.Gradient(x) // dz/dx = 4
//	gy, _ := tape.Gradient(y) // dz/dy = 3
package autodiff

import (
	"github.com/rax-ml/rax/internal/autodiff"
)

// Tape owns all nodes created during a forward pass.
type Tape = autodiff.Tape

// Handle is a non-owning reference to a node on a specific Tape.
type Handle = autodiff.Handle

// Kind tags the mathematical operation that produced a node.
type Kind = autodiff.Kind

// ErrInvalidHandle indicates a Handle presented to a Tape that does
// not own it.
var ErrInvalidHandle = autodiff.ErrInvalidHandle

// NewTape creates an empty tape.
func NewTape() *Tape {
	return autodiff.NewTape()
}
