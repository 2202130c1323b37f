package trajectory

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/linenbot/foldmotion/spatialmath"
)

// relative tolerance when comparing the durations of trajectories that should share a time domain.
const durationEpsilon = 1e-9

// Combine zips an orientation trajectory and a position trajectory over the same time domain into a pose
// trajectory. The two must have the same duration.
func Combine(orientation Orientation, position Position) (Pose, error) {
	od, pd := orientation.Duration(), position.Duration()
	if math.Abs(od-pd) > durationEpsilon*math.Max(1, math.Max(math.Abs(od), math.Abs(pd))) {
		return nil, errors.Wrapf(ErrDurationMismatch, "orientation lasts %v but position lasts %v", od, pd)
	}
	return &combined{orientation: orientation, position: position}, nil
}

type combined struct {
	orientation Orientation
	position    Position
}

func (c *combined) At(t float64) spatialmath.Pose {
	t = Clamp(t, c.Duration())
	return spatialmath.NewPose(c.position.At(t), c.orientation.At(t))
}

func (c *combined) Duration() float64 {
	return c.position.Duration()
}

// Positions returns the position component of a pose trajectory.
func Positions(p Pose) Position {
	return NewFunc(p.Duration(), func(t float64) r3.Vector { return p.At(t).Point() })
}

// Orientations returns the orientation component of a pose trajectory.
func Orientations(p Pose) Orientation {
	return NewFunc(p.Duration(), func(t float64) spatialmath.Orientation { return p.At(t).Orientation() })
}
