// Package folding plans the end effector motion of cloth folds.
//
// A circular fold grasps a point, pivots it about a fold line through nearly a half turn at constant
// speed, and meanwhile turns the gripper from pitched down at the grasp, through flipped over the fold
// line, to pitched up at release.
package folding

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/linenbot/foldmotion/spatialmath"
	"github.com/linenbot/foldmotion/trajectory"
)

// CircularFoldMiddleOrientation returns the gripper orientation when the grasped point passes over the
// fold line: the flat orientation for approachDirection rotated a quarter turn about foldLineDirection,
// the midpoint of a half turn. It does not depend on the pitch angles.
func CircularFoldMiddleOrientation(approachDirection, foldLineDirection r3.Vector) (spatialmath.Orientation, error) {
	if !spatialmath.R3VectorIsFinite(foldLineDirection) {
		return nil, errors.Wrapf(ErrNonFiniteVector, "fold line direction %v", foldLineDirection)
	}
	flat, err := FlatOrientation(approachDirection)
	if err != nil {
		return nil, err
	}
	path, err := trajectory.NewCircularArcOrientationPath(flat, foldLineDirection, math.Pi)
	if err != nil {
		return nil, err
	}
	return path.At(path.Duration() / 2), nil
}

// CircularFoldTrajectory returns the pose trajectory of a circular fold of the point grasped at grasp,
// approached from approachDirection, about line. A nil cfg uses the defaults.
//
// The position sweeps grasp about line at cfg.Speed through pi - asin(cfg.EndHeightOffset / radius) radians.
// The orientation is interpolated between the start, middle and end keyframes at times 0, duration/2 and
// duration. Fails with ErrDegenerateGeometry if grasp lies on line and ErrUnreachableConfiguration if the
// height offset exceeds the radius.
func CircularFoldTrajectory(
	grasp, approachDirection r3.Vector,
	line FoldLine,
	cfg *FoldConfig,
) (trajectory.Pose, error) {
	traj, _, err := circularFold(grasp, approachDirection, line, cfg)
	return traj, err
}

func circularFold(
	grasp, approachDirection r3.Vector,
	line FoldLine,
	cfg *FoldConfig,
) (trajectory.Pose, *PivotGeometry, error) {
	if cfg == nil {
		cfg = NewDefaultFoldConfig()
	}
	if err := cfg.Validate("config"); err != nil {
		return nil, nil, err
	}

	geometry, err := ComputePivotGeometry(grasp, line, cfg.EndHeightOffset)
	if err != nil {
		return nil, nil, err
	}

	positions, err := trajectory.NewCircularArcPosition(grasp, line.A, line.Direction(), geometry.MaxAngle, cfg.Speed)
	if err != nil {
		return nil, nil, err
	}

	middle, err := CircularFoldMiddleOrientation(approachDirection, line.Direction())
	if err != nil {
		return nil, nil, err
	}
	flat, err := FlatOrientation(approachDirection)
	if err != nil {
		return nil, nil, err
	}
	start := PitchGripperOrientation(flat, -cfg.StartPitchAngle)
	end := PitchGripperOrientation(flat, cfg.EndPitchAngle-math.Pi)

	duration := positions.Duration()
	orientations, err := trajectory.NewSlerp(
		[]float64{0, duration / 2, duration},
		[]spatialmath.Orientation{start, middle, end},
	)
	if err != nil {
		return nil, nil, err
	}

	poses, err := trajectory.Combine(orientations, positions)
	if err != nil {
		return nil, nil, err
	}
	return poses, geometry, nil
}
