package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/linenbot/foldmotion/utils"
)

// two points closer than this do not define a line.
const lineEpsilon = 1e-12

// ErrDegenerateLine is returned when the two points given to define a line coincide.
var ErrDegenerateLine = errors.New("line is degenerate, its two defining points coincide")

// ProjectPointOnLine returns the orthogonal projection of p onto the infinite line through a and b.
func ProjectPointOnLine(p, a, b r3.Vector) (r3.Vector, error) {
	dir := b.Sub(a)
	n2 := dir.Norm2()
	if n2 < utils.Square(lineEpsilon) {
		return r3.Vector{}, ErrDegenerateLine
	}
	return a.Add(dir.Mul(p.Sub(a).Dot(dir) / n2)), nil
}

// DistanceToLine returns the distance from p to the infinite line through a and b.
func DistanceToLine(p, a, b r3.Vector) (float64, error) {
	proj, err := ProjectPointOnLine(p, a, b)
	if err != nil {
		return 0, err
	}
	return proj.Distance(p), nil
}

// RotatePointAroundLine rotates p by theta radians about the line through linePoint with direction axis,
// following the right hand rule about axis.
func RotatePointAroundLine(p, linePoint, axis r3.Vector, theta float64) (r3.Vector, error) {
	aa, err := NewR4AAFromAxis(axis, theta)
	if err != nil {
		return r3.Vector{}, errors.Wrap(ErrDegenerateLine, err.Error())
	}
	q := Quaternion(aa.ToQuat())
	return RotateVector(&q, p.Sub(linePoint)).Add(linePoint), nil
}
