package cli

import (
	"context"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/linenbot/foldmotion/spatialmath"
	"github.com/linenbot/foldmotion/trajectory"
)

// plotTrajectory saves a plot of the position components and the rotation away from the starting
// orientation of traj against time.
func plotTrajectory(ctx context.Context, traj trajectory.Pose, samples int, path string) error {
	if samples < 2 {
		return errors.Errorf("need at least 2 samples to plot, got %d", samples)
	}
	times, poses, err := trajectory.SampleParallel(ctx, traj, samples)
	if err != nil {
		return err
	}

	x, y, z, rot := make(plotter.XYs, samples), make(plotter.XYs, samples), make(plotter.XYs, samples), make(plotter.XYs, samples)
	start := poses[0].Orientation()
	for i, p := range poses {
		pt := p.Point()
		x[i].X, x[i].Y = times[i], pt.X
		y[i].X, y[i].Y = times[i], pt.Y
		z[i].X, z[i].Y = times[i], pt.Z
		rot[i].X = times[i]
		rot[i].Y = spatialmath.QuatAngle(spatialmath.OrientationBetween(start, p.Orientation()).Quaternion())
	}

	p := plot.New()
	p.Title.Text = "Circular fold"
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = "position / rotation (rad)"
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLinePoints(p, "x", x, "y", y, "z", z, "rotation", rot); err != nil {
		return errors.Wrap(err, "cannot build plot")
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "cannot save plot to %q", path)
	}
	return nil
}
