package folding

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/linenbot/foldmotion/spatialmath"
)

var (
	worldUp = r3.Vector{X: 0, Y: 0, Z: 1}
	worldX  = r3.Vector{X: 1, Y: 0, Z: 0}
	// gripper frame axis a pitch rotates about
	pitchAxis = r3.Vector{X: 0, Y: 1, Z: 0}
)

// approaches within this angle of vertical use world X instead of world up as their reference.
const verticalEpsilon = 1e-9

// FlatOrientation returns the gripper orientation with its Z axis along approachDirection and its jaws
// parallel to the table: gripper X is the part of world up orthogonal to the approach and gripper Y = Z x X
// is the pitch axis. When approaching vertically world X stands in for world up.
func FlatOrientation(approachDirection r3.Vector) (spatialmath.Orientation, error) {
	if !spatialmath.R3VectorIsFinite(approachDirection) {
		return nil, errors.Wrapf(ErrNonFiniteVector, "approach direction %v", approachDirection)
	}
	if approachDirection.Norm() == 0 {
		return nil, ErrZeroApproach
	}
	z := approachDirection.Normalize()

	ref := worldUp
	if 1-math.Abs(z.Dot(ref)) < verticalEpsilon {
		ref = worldX
	}
	x := ref.Sub(z.Mul(ref.Dot(z))).Normalize()
	y := z.Cross(x)

	rm, err := spatialmath.NewRotationMatrixFromColumns(x, y, z)
	if err != nil {
		return nil, err
	}
	return rm, nil
}

// PitchGripperOrientation rotates orientation by angle radians about the gripper's own Y axis. A positive
// angle tilts gripper Z towards gripper X (up, for a flat orientation); a negative angle tilts it down.
func PitchGripperOrientation(orientation spatialmath.Orientation, angle float64) spatialmath.Orientation {
	pitch := &spatialmath.R4AA{Theta: angle, RX: pitchAxis.X, RY: pitchAxis.Y, RZ: pitchAxis.Z}
	return spatialmath.Compose(orientation, pitch)
}
