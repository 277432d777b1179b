package tensor

import "github.com/pkg/errors"

// Sentinel errors for contract violations. Callers match them with
// errors.Is; each failing operation wraps them with operation-specific
// context.
var (
	// ErrShapeMismatch indicates operand shapes are incompatible with the
	// requested operation (element counts, inner dimensions, seed shape).
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDimensionalityMismatch indicates an operation requiring a specific
	// rank received a tensor of the wrong rank (e.g. matrix product on a
	// 1-D tensor).
	ErrDimensionalityMismatch = errors.New("dimensionality mismatch")

	// ErrSingularMatrix indicates a matrix inverse or solve on a
	// non-invertible matrix.
	ErrSingularMatrix = errors.New("singular matrix")
)
