package folding

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/linenbot/foldmotion/spatialmath"
)

// grasp points closer than this to the fold line have no usable pivot radius.
const minPivotRadius = 1e-12

// PivotGeometry describes the circle a grasped point follows around a fold line.
type PivotGeometry struct {
	// Projection is the foot of the perpendicular from the grasp location to the fold line.
	Projection r3.Vector `json:"projection"`
	Radius     float64   `json:"radius"`
	// AngleDelta is how far short of a half turn the fold stops, asin(endHeightOffset / Radius).
	AngleDelta float64 `json:"angle_delta_rad"`
	// MaxAngle is the total sweep, pi - AngleDelta.
	MaxAngle float64 `json:"max_angle_rad"`
}

// ComputePivotGeometry projects grasp onto the fold line and derives the sweep that leaves the grasped
// point endHeightOffset away from the plane it would reach after a full half turn.
func ComputePivotGeometry(grasp r3.Vector, line FoldLine, endHeightOffset float64) (*PivotGeometry, error) {
	if !spatialmath.R3VectorIsFinite(grasp) {
		return nil, errors.Wrapf(ErrNonFiniteVector, "grasp location %v", grasp)
	}
	if !spatialmath.R3VectorIsFinite(line.A) || !spatialmath.R3VectorIsFinite(line.B) {
		return nil, errors.Wrapf(ErrNonFiniteVector, "fold line %v", line)
	}
	if math.IsNaN(endHeightOffset) || math.IsInf(endHeightOffset, 0) {
		return nil, errors.Errorf("end height offset must be finite, got %v", endHeightOffset)
	}
	projection, err := spatialmath.ProjectPointOnLine(grasp, line.A, line.B)
	if err != nil {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "fold line %v: %v", line, err)
	}
	radius := projection.Distance(grasp)
	if radius < minPivotRadius {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "grasp location %v lies on the fold line", grasp)
	}
	ratio := endHeightOffset / radius
	if math.Abs(ratio) > 1 {
		return nil, errors.Wrapf(ErrUnreachableConfiguration, "end height offset %v exceeds radius %v", endHeightOffset, radius)
	}
	angleDelta := math.Asin(ratio)
	return &PivotGeometry{
		Projection: projection,
		Radius:     radius,
		AngleDelta: angleDelta,
		MaxAngle:   math.Pi - angleDelta,
	}, nil
}

// ArcLength returns the distance the grasped point travels.
func (g *PivotGeometry) ArcLength() float64 {
	return g.Radius * g.MaxAngle
}

// Duration returns the time taken to travel the arc at the given speed.
func (g *PivotGeometry) Duration(speed float64) float64 {
	return g.ArcLength() / speed
}
