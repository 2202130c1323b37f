package trajectory

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/linenbot/foldmotion/spatialmath"
)

// points closer than this to the axis cannot be swept around it.
const minArcRadius = 1e-12

// CircularArcPosition moves a point around an axis at constant linear speed.
type CircularArcPosition struct {
	start    r3.Vector
	center   r3.Vector
	axis     r3.Vector
	radius   float64
	maxAngle float64
	speed    float64
}

// NewCircularArcPosition returns a trajectory sweeping start by maxAngle radians about the line through
// linePoint with direction axis, following the right hand rule about axis, at speed units of arc length
// per second. Its duration is radius * maxAngle / speed.
func NewCircularArcPosition(start, linePoint, axis r3.Vector, maxAngle, speed float64) (*CircularArcPosition, error) {
	center, err := spatialmath.ProjectPointOnLine(start, linePoint, linePoint.Add(axis))
	if err != nil {
		return nil, err
	}
	if !(speed > 0) || math.IsInf(speed, 0) {
		return nil, errors.Wrapf(ErrInvalidSpeed, "got %v", speed)
	}
	if !(maxAngle >= 0) || math.IsInf(maxAngle, 0) {
		return nil, errors.Wrapf(ErrInvalidAngle, "got %v", maxAngle)
	}
	radius := center.Distance(start)
	if radius < minArcRadius {
		return nil, ErrZeroRadius
	}
	return &CircularArcPosition{
		start:    start,
		center:   center,
		axis:     axis.Normalize(),
		radius:   radius,
		maxAngle: maxAngle,
		speed:    speed,
	}, nil
}

// At returns the position after t seconds.
func (c *CircularArcPosition) At(t float64) r3.Vector {
	aa := spatialmath.R4AA{Theta: c.Angle(t), RX: c.axis.X, RY: c.axis.Y, RZ: c.axis.Z}
	q := spatialmath.Quaternion(aa.ToQuat())
	return spatialmath.RotateVector(&q, c.start.Sub(c.center)).Add(c.center)
}

// Angle returns the angle swept after t seconds. It is non-decreasing in t.
func (c *CircularArcPosition) Angle(t float64) float64 {
	return c.speed * Clamp(t, c.Duration()) / c.radius
}

// Duration returns the time taken to sweep the whole arc.
func (c *CircularArcPosition) Duration() float64 {
	return c.radius * c.maxAngle / c.speed
}

// Radius returns the distance from the start point to the axis.
func (c *CircularArcPosition) Radius() float64 {
	return c.radius
}

// Center returns the projection of the start point onto the axis.
func (c *CircularArcPosition) Center() r3.Vector {
	return c.center
}

type circularArcOrientation struct {
	start      quat.Number
	axis       r3.Vector
	totalAngle float64
}

// NewCircularArcOrientationPath returns the path of start rotated about axis, expressed in the world frame,
// following the right hand rule. The path is parameterized by the rotation angle in radians, not by time:
// At(a) is start rotated by a, and Duration() is totalAngle.
func NewCircularArcOrientationPath(start spatialmath.Orientation, axis r3.Vector, totalAngle float64) (Orientation, error) {
	if axis.Norm() == 0 {
		return nil, spatialmath.ErrZeroAxis
	}
	if !(totalAngle >= 0) || math.IsInf(totalAngle, 0) {
		return nil, errors.Wrapf(ErrInvalidAngle, "got %v", totalAngle)
	}
	return &circularArcOrientation{
		start:      spatialmath.Normalize(start.Quaternion()),
		axis:       axis.Normalize(),
		totalAngle: totalAngle,
	}, nil
}

func (c *circularArcOrientation) At(angle float64) spatialmath.Orientation {
	aa := spatialmath.R4AA{Theta: Clamp(angle, c.totalAngle), RX: c.axis.X, RY: c.axis.Y, RZ: c.axis.Z}
	q := spatialmath.Quaternion(spatialmath.Normalize(quat.Mul(aa.ToQuat(), c.start)))
	return &q
}

func (c *circularArcOrientation) Duration() float64 {
	return c.totalAngle
}
