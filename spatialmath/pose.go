package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/linenbot/foldmotion/utils"
)

const defaultPointEpsilon = 1e-8

// Pose represents a 6dof pose, position and orientation, with respect to the origin.
// The Point() and Orientation() functions return the position and orientation of the pose.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

type basicPose struct {
	point       r3.Vector
	orientation Orientation
}

// NewPose returns a pose at the given point with the given orientation.
// A nil orientation is treated as no rotation.
func NewPose(point r3.Vector, orientation Orientation) Pose {
	if orientation == nil {
		orientation = NewZeroOrientation()
	}
	return &basicPose{point: point, orientation: orientation}
}

// NewZeroPose returns a pose at (0,0,0) with no rotation.
func NewZeroPose() Pose {
	return NewPose(r3.Vector{}, NewZeroOrientation())
}

func (p *basicPose) Point() r3.Vector {
	return p.point
}

func (p *basicPose) Orientation() Orientation {
	return p.orientation
}

func (p *basicPose) String() string {
	aa := p.orientation.AxisAngles()
	return fmt.Sprintf("{X:%.4f Y:%.4f Z:%.4f Theta:%.4f RX:%.4f RY:%.4f RZ:%.4f}",
		p.point.X, p.point.Y, p.point.Z, aa.Theta, aa.RX, aa.RY, aa.RZ)
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, defaultPointEpsilon)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are approximately the same,
// comparing points within epsilon and orientations within defaultAngleEpsilon.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), epsilon) && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}

// PoseAlmostCoincidentEps will return a bool describing whether 2 poses have the same point, ignoring orientation.
func PoseAlmostCoincidentEps(a, b Pose, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), epsilon)
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) &&
		utils.Float64AlmostEqual(a.Y, b.Y, epsilon) &&
		utils.Float64AlmostEqual(a.Z, b.Z, epsilon)
}

// R3VectorIsFinite reports whether every component of v is neither NaN nor infinite.
func R3VectorIsFinite(v r3.Vector) bool {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
