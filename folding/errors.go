package folding

import "github.com/pkg/errors"

var (
	// ErrDegenerateGeometry is returned when the grasp location lies on the fold line, or the fold
	// line's two points coincide, so there is no circle to pivot around.
	ErrDegenerateGeometry = errors.New("degenerate fold geometry")
	// ErrUnreachableConfiguration is returned when the requested end height offset is larger than the
	// pivot radius and so can never be reached by rotating about the fold line.
	ErrUnreachableConfiguration = errors.New("end height offset is unreachable for this grasp radius")
	// ErrInvalidSpeed is returned when the fold speed is not a positive finite number.
	ErrInvalidSpeed = errors.New("fold speed must be positive and finite")
	// ErrZeroApproach is returned when the approach direction has zero length.
	ErrZeroApproach = errors.New("approach direction has zero length")
	// ErrNonFiniteVector is returned when a grasp location, approach direction or fold line point has a NaN
	// or infinite component.
	ErrNonFiniteVector = errors.New("vector has a NaN or infinite component")
)
