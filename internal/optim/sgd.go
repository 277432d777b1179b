package optim

// SGD implements plain stochastic gradient descent.
//
// Update rule:
//
//	param -= lr * grad
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{lr: config.LR}
}

// Step applies one gradient-descent update.
func (s *SGD) Step(params, grads []float64) error {
	if err := checkStep(params, grads); err != nil {
		return err
	}
	for i := range params {
		params[i] -= s.lr * grads[i]
	}
	return nil
}

// Reset is a no-op: plain SGD carries no running state.
func (s *SGD) Reset() {}

// LR returns the current learning rate.
func (s *SGD) LR() float64 {
	return s.lr
}

// SetLR updates the learning rate, for scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// Momentum implements gradient descent with classical momentum.
//
// Update rule:
//
//	v = momentum*v - lr*grad
//	param += v
//
// The velocity buffer is sized on the first Step.
type Momentum struct {
	lr       float64
	momentum float64
	velocity []float64
}

// MomentumConfig holds configuration for the Momentum optimizer.
type MomentumConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Velocity decay factor (default: 0.9)
}

// NewMomentum creates a new Momentum optimizer.
func NewMomentum(config MomentumConfig) *Momentum {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.Momentum == 0 {
		config.Momentum = 0.9
	}
	return &Momentum{lr: config.LR, momentum: config.Momentum}
}

// Step applies one momentum update.
func (m *Momentum) Step(params, grads []float64) error {
	if err := checkStep(params, grads); err != nil {
		return err
	}
	if len(m.velocity) != len(params) {
		m.velocity = make([]float64, len(params))
	}
	for i := range params {
		m.velocity[i] = m.momentum*m.velocity[i] - m.lr*grads[i]
		params[i] += m.velocity[i]
	}
	return nil
}

// Reset drops the velocity buffer.
func (m *Momentum) Reset() {
	m.velocity = nil
}

// LR returns the current learning rate.
func (m *Momentum) LR() float64 {
	return m.lr
}

// SetLR updates the learning rate.
func (m *Momentum) SetLR(lr float64) {
	m.lr = lr
}
