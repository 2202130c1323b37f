package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/linenbot/foldmotion/utils"
)

// Quaternion is an orientation in quaternion representation.
type Quaternion quat.Number

// Quaternion returns orientation in quaternion representation.
func (q *Quaternion) Quaternion() quat.Number {
	return quat.Number(*q)
}

// AxisAngles returns the orientation in axis angle representation.
func (q *Quaternion) AxisAngles() *R4AA {
	return QuatToR4AA(q.Quaternion())
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (q *Quaternion) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(q.Quaternion())
}

// QuatToR4AA converts a quat to an R4 axis angle in the same way the C++ Eigen library does.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToR4AA(q quat.Number) *R4AA {
	denom := Norm(q)

	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}

	if denom < 1e-6 {
		return &R4AA{Theta: angle, RX: 0, RY: 0, RZ: 1}
	}
	return &R4AA{Theta: angle, RX: q.Imag / denom, RY: q.Jmag / denom, RZ: q.Kmag / denom}
}

// Norm returns the norm of the quaternion, i.e. the sqrt of the squares of the imaginary parts.
func Norm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// Normalize scales a quaternion to unit length.
func Normalize(q quat.Number) quat.Number {
	return quat.Scale(1/quat.Abs(q), q)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// QuaternionAlmostEqual is an equality test for all the float components of a quaternion. Quaternions have double coverage,
// q and -q represent the same orientation, and this test does not consider them equal; use OrientationAlmostEqual for that.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return utils.Float64AlmostEqual(a.Imag, b.Imag, tol) &&
		utils.Float64AlmostEqual(a.Jmag, b.Jmag, tol) &&
		utils.Float64AlmostEqual(a.Kmag, b.Kmag, tol) &&
		utils.Float64AlmostEqual(a.Real, b.Real, tol)
}

// slerp returns the spherical linear interpolation between two unit quaternions along the shortest arc.
// See: https://en.wikipedia.org/wiki/Slerp
func slerp(qN1, qN2 quat.Number, by float64) quat.Number {
	qN1 = Normalize(qN1)
	qN2 = Normalize(qN2)

	dot := qN1.Real*qN2.Real + qN1.Imag*qN2.Imag + qN1.Jmag*qN2.Jmag + qN1.Kmag*qN2.Kmag
	if dot < 0 {
		qN2 = Flip(qN2)
		dot = -dot
	}

	// nearly parallel, acos is numerically unstable here so lerp and renormalize
	if dot > 0.9995 {
		return Normalize(quat.Add(qN1, quat.Scale(by, quat.Sub(qN2, qN1))))
	}

	theta0 := math.Acos(dot)
	theta := theta0 * by
	sinTheta0 := math.Sin(theta0)

	s1 := math.Sin(theta) / sinTheta0
	s0 := math.Cos(theta) - dot*s1
	return quat.Add(quat.Scale(s0, qN1), quat.Scale(s1, qN2))
}
