package optim

import "math"

// AdaGrad implements the adaptive-gradient optimizer.
//
// Update rule:
//
//	cache += grad²
//	param -= lr * grad / (sqrt(cache) + eps)
//
// The per-parameter cache grows monotonically, so the effective
// learning rate only ever shrinks.
type AdaGrad struct {
	lr    float64
	eps   float64
	cache []float64
}

// AdaGradConfig holds configuration for the AdaGrad optimizer.
type AdaGradConfig struct {
	LR  float64 // Learning rate (default: 0.01)
	Eps float64 // Term for numerical stability (default: 1e-8)
}

// NewAdaGrad creates a new AdaGrad optimizer.
func NewAdaGrad(config AdaGradConfig) *AdaGrad {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &AdaGrad{lr: config.LR, eps: config.Eps}
}

// Step applies one AdaGrad update.
func (a *AdaGrad) Step(params, grads []float64) error {
	if err := checkStep(params, grads); err != nil {
		return err
	}
	if len(a.cache) != len(params) {
		a.cache = make([]float64, len(params))
	}
	for i := range params {
		a.cache[i] += grads[i] * grads[i]
		params[i] -= a.lr * grads[i] / (math.Sqrt(a.cache[i]) + a.eps)
	}
	return nil
}

// Reset drops the accumulated cache.
func (a *AdaGrad) Reset() {
	a.cache = nil
}

// LR returns the current learning rate.
func (a *AdaGrad) LR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *AdaGrad) SetLR(lr float64) {
	a.lr = lr
}

// RMSprop implements the RMSprop optimizer.
//
// Update rule:
//
//	cache = decay*cache + (1-decay)*grad²
//	param -= lr * grad / (sqrt(cache) + eps)
//
// Unlike AdaGrad the cache is an exponential moving average, so old
// gradients decay away instead of shrinking the step forever.
type RMSprop struct {
	lr    float64
	decay float64
	eps   float64
	cache []float64
}

// RMSpropConfig holds configuration for the RMSprop optimizer.
type RMSpropConfig struct {
	LR    float64 // Learning rate (default: 0.01)
	Decay float64 // Cache decay rate (default: 0.9)
	Eps   float64 // Term for numerical stability (default: 1e-8)
}

// NewRMSprop creates a new RMSprop optimizer.
func NewRMSprop(config RMSpropConfig) *RMSprop {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.Decay == 0 {
		config.Decay = 0.9
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}
	return &RMSprop{lr: config.LR, decay: config.Decay, eps: config.Eps}
}

// Step applies one RMSprop update.
func (r *RMSprop) Step(params, grads []float64) error {
	if err := checkStep(params, grads); err != nil {
		return err
	}
	if len(r.cache) != len(params) {
		r.cache = make([]float64, len(params))
	}
	for i := range params {
		r.cache[i] = r.decay*r.cache[i] + (1-r.decay)*grads[i]*grads[i]
		params[i] -= r.lr * grads[i] / (math.Sqrt(r.cache[i]) + r.eps)
	}
	return nil
}

// Reset drops the running cache.
func (r *RMSprop) Reset() {
	r.cache = nil
}

// LR returns the current learning rate.
func (r *RMSprop) LR() float64 {
	return r.lr
}

// SetLR updates the learning rate.
func (r *RMSprop) SetLR(lr float64) {
	r.lr = lr
}
