// Package spatialmath defines spatial mathematical operations.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// If two orientations differ by less than this angle, we consider them the same.
const defaultAngleEpsilon = 1e-5 // radians

// Orientation is an interface used to express the different parameterizations of the orientation
// of a rigid object or a frame of reference in 3D Euclidean space.
// Every implementation represents a proper rotation.
type Orientation interface {
	AxisAngles() *R4AA
	Quaternion() quat.Number
	RotationMatrix() *RotationMatrix
}

// NewZeroOrientation returns an orientatation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return &Quaternion{1, 0, 0, 0}
}

// OrientationAlmostEqual will return a bool describing whether 2 poses have approximately the same orientation.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	return OrientationAlmostEqualEps(o1, o2, defaultAngleEpsilon)
}

// OrientationAlmostEqualEps will return a bool describing whether 2 orientations are within epsilon radians
// of one another. q and -q describe the same rotation and compare equal.
func OrientationAlmostEqualEps(o1, o2 Orientation, epsilon float64) bool {
	return QuatAngle(OrientationBetween(o1, o2).Quaternion()) < epsilon
}

// OrientationBetween returns the orientation representing the difference between the two given Orientations.
func OrientationBetween(o1, o2 Orientation) Orientation {
	q := Quaternion(quat.Mul(o2.Quaternion(), quat.Conj(o1.Quaternion())))
	return &q
}

// Compose returns the orientation obtained by first applying o2 and then o1, i.e. o1 * o2.
// When o1 is expressed in the frame of o2 this is the usual "rotate in the local frame" product.
func Compose(o1, o2 Orientation) Orientation {
	q := Quaternion(Normalize(quat.Mul(o1.Quaternion(), o2.Quaternion())))
	return &q
}

// Interpolate will return an orientation that is the specified fraction of the way between the two given
// orientations along the shortest arc. by = 0 returns o1 and by = 1 returns o2.
func Interpolate(o1, o2 Orientation, by float64) Orientation {
	q := Quaternion(slerp(o1.Quaternion(), o2.Quaternion(), by))
	return &q
}

// RotateVector rotates v by the given orientation.
func RotateVector(o Orientation, v r3.Vector) r3.Vector {
	q := Normalize(o.Quaternion())
	p := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

// QuatAngle returns the magnitude in radians, in [0, pi], of the rotation described by q.
func QuatAngle(q quat.Number) float64 {
	return 2 * math.Atan2(Norm(q), math.Abs(q.Real))
}
