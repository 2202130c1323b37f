package trajectory

import (
	"context"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/linenbot/foldmotion/spatialmath"
	"github.com/linenbot/foldmotion/utils"
)

// Sample evaluates traj at n evenly spaced times covering [0, Duration()], both ends included.
func Sample[T any](traj Trajectory[T], n int) ([]float64, []T, error) {
	if n < 1 {
		return nil, nil, errors.Errorf("need at least 1 sample, got %d", n)
	}
	times := make([]float64, n)
	if n > 1 {
		floats.Span(times, 0, traj.Duration())
	}
	values := make([]T, n)
	for i, t := range times {
		values[i] = traj.At(t)
	}
	return times, values, nil
}

// SampleParallel is like Sample but evaluates traj from several goroutines at once. Trajectories are
// immutable so this is always safe; it is meant for callers sampling densely for inspection.
func SampleParallel[T any](ctx context.Context, traj Trajectory[T], n int) ([]float64, []T, error) {
	if n < 1 {
		return nil, nil, errors.Errorf("need at least 1 sample, got %d", n)
	}
	times := make([]float64, n)
	if n > 1 {
		floats.Span(times, 0, traj.Duration())
	}
	values := make([]T, n)
	if err := utils.GroupWorkParallel(ctx, n, func(i int) {
		values[i] = traj.At(times[i])
	}); err != nil {
		return nil, nil, err
	}
	return times, values, nil
}

// MotionProfile summarizes the motion of a pose trajectory, estimated by finite differences over samples.
type MotionProfile struct {
	Samples           int     `json:"samples"`
	Duration          float64 `json:"duration_s"`
	PathLength        float64 `json:"path_length"`
	MeanLinearSpeed   float64 `json:"mean_linear_speed"`
	MaxLinearSpeed    float64 `json:"max_linear_speed"`
	LinearSpeedStdDev float64 `json:"linear_speed_stddev"`
	TotalRotation     float64 `json:"total_rotation_rad"`
	MaxAngularSpeed   float64 `json:"max_angular_speed"`
}

// Profile samples traj n times and reports its path length and speeds.
func Profile(traj Pose, n int) (*MotionProfile, error) {
	if n < 2 {
		return nil, errors.Errorf("need at least 2 samples to profile, got %d", n)
	}
	if traj.Duration() <= 0 {
		return nil, errors.New("cannot profile a trajectory of zero duration")
	}
	times, poses, err := Sample(traj, n)
	if err != nil {
		return nil, err
	}

	dists := make([]float64, n-1)
	linear := make([]float64, n-1)
	rotations := make([]float64, n-1)
	angular := make([]float64, n-1)
	for i := 1; i < n; i++ {
		dt := times[i] - times[i-1]
		dists[i-1] = poses[i].Point().Distance(poses[i-1].Point())
		linear[i-1] = dists[i-1] / dt
		between := spatialmath.OrientationBetween(poses[i-1].Orientation(), poses[i].Orientation())
		rotations[i-1] = spatialmath.QuatAngle(between.Quaternion())
		angular[i-1] = rotations[i-1] / dt
	}

	profile := &MotionProfile{Samples: n, Duration: traj.Duration()}
	if profile.PathLength, err = stats.Sum(dists); err != nil {
		return nil, err
	}
	if profile.MeanLinearSpeed, err = stats.Mean(linear); err != nil {
		return nil, err
	}
	if profile.MaxLinearSpeed, err = stats.Max(linear); err != nil {
		return nil, err
	}
	if profile.LinearSpeedStdDev, err = stats.StandardDeviation(linear); err != nil {
		return nil, err
	}
	if profile.TotalRotation, err = stats.Sum(rotations); err != nil {
		return nil, err
	}
	if profile.MaxAngularSpeed, err = stats.Max(angular); err != nil {
		return nil, err
	}
	if math.IsNaN(profile.MeanLinearSpeed) {
		return nil, errors.New("trajectory produced non-finite positions")
	}
	return profile, nil
}
