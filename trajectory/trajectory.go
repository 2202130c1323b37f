// Package trajectory defines time parameterized paths of positions, orientations and poses, and the
// generators and combinators used to build them.
//
// A Trajectory is a value: it captures only immutable parameters, evaluating it has no side effects,
// and it may be evaluated any number of times, in any order, from any number of goroutines.
// Evaluating outside of [0, Duration()] clamps to the nearest end.
package trajectory

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/linenbot/foldmotion/spatialmath"
	"github.com/linenbot/foldmotion/utils"
)

var (
	// ErrDurationMismatch is returned when trajectories that must share a time domain do not.
	ErrDurationMismatch = errors.New("trajectory durations do not match")
	// ErrInvalidKeyframes is returned when interpolation keyframes are malformed.
	ErrInvalidKeyframes = errors.New("invalid keyframes")
	// ErrInvalidSpeed is returned when a generator is asked to move at a non-positive speed.
	ErrInvalidSpeed = errors.New("speed must be positive")
	// ErrInvalidAngle is returned when a generator is asked to sweep a negative or non-finite angle.
	ErrInvalidAngle = errors.New("sweep angle must be finite and non-negative")
	// ErrZeroRadius is returned when a circular arc is requested for a point lying on its own axis.
	ErrZeroRadius = errors.New("arc radius is zero, the start point lies on the rotation axis")
)

// Trajectory is a function of time over [0, Duration()].
type Trajectory[T any] interface {
	At(t float64) T
	Duration() float64
}

// Position is a trajectory of points.
type Position = Trajectory[r3.Vector]

// Orientation is a trajectory of orientations.
type Orientation = Trajectory[spatialmath.Orientation]

// Pose is a trajectory of full 6dof poses.
type Pose = Trajectory[spatialmath.Pose]

type funcTrajectory[T any] struct {
	duration float64
	fn       func(t float64) T
}

// NewFunc wraps fn as a trajectory of the given duration. fn is only ever called with t in [0, duration].
func NewFunc[T any](duration float64, fn func(t float64) T) Trajectory[T] {
	return &funcTrajectory[T]{duration: duration, fn: fn}
}

func (f *funcTrajectory[T]) At(t float64) T {
	return f.fn(Clamp(t, f.duration))
}

func (f *funcTrajectory[T]) Duration() float64 {
	return f.duration
}

// Clamp limits t to the domain [0, duration].
func Clamp(t, duration float64) float64 {
	return utils.Clamp(t, 0, duration)
}
