package folding

import (
	"math"

	"github.com/pkg/errors"

	"github.com/linenbot/foldmotion/logging"
	"github.com/linenbot/foldmotion/trajectory"
)

// FoldPlan is a planned fold: the request it answers, the pivot it uses and the resulting trajectory.
type FoldPlan struct {
	Request    *FoldRequest
	Geometry   *PivotGeometry
	Trajectory trajectory.Pose
}

// PlanFold validates req and computes its circular fold trajectory.
func PlanFold(logger logging.Logger, req *FoldRequest) (*FoldPlan, error) {
	if req == nil {
		return nil, errors.New("no fold request given")
	}
	if err := req.Validate("request"); err != nil {
		return nil, err
	}

	traj, geometry, err := circularFold(req.GraspLocation, req.ApproachDirection, req.FoldLine, req.Config)
	if err != nil {
		return nil, errors.Wrap(err, "cannot plan circular fold")
	}
	logger.Debugw("pivot geometry",
		"projection", geometry.Projection,
		"radius", geometry.Radius,
		"angle_delta_rad", geometry.AngleDelta,
		"max_angle_rad", geometry.MaxAngle,
	)
	if geometry.MaxAngle > math.Pi {
		logger.Warnw("negative end height offset sweeps the fold past a half turn",
			"end_height_offset", req.Config.EndHeightOffset,
			"max_angle_rad", geometry.MaxAngle,
		)
	}
	logger.Infow("planned circular fold",
		"duration_s", traj.Duration(),
		"arc_length", geometry.ArcLength(),
		"speed", req.Config.Speed,
	)

	return &FoldPlan{Request: req, Geometry: geometry, Trajectory: traj}, nil
}
