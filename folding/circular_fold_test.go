package folding

import (
	"math"
	"sync"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/linenbot/foldmotion/spatialmath"
	"github.com/linenbot/foldmotion/trajectory"
)

var (
	scenarioGrasp    = r3.Vector{X: 1}
	scenarioApproach = r3.Vector{Z: -1}
	scenarioLine     = NewFoldLine(r3.Vector{}, r3.Vector{Y: 1})
)

const scenarioDuration = 12.406327916943217

func TestCircularFoldTrajectory(t *testing.T) {
	traj, err := CircularFoldTrajectory(scenarioGrasp, scenarioApproach, scenarioLine, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.Duration(), test.ShouldAlmostEqual, scenarioDuration, 1e-9)

	flat, err := FlatOrientation(scenarioApproach)
	test.That(t, err, test.ShouldBeNil)
	middle, err := CircularFoldMiddleOrientation(scenarioApproach, scenarioLine.Direction())
	test.That(t, err, test.ShouldBeNil)

	t.Run("start", func(t *testing.T) {
		start := traj.At(0)
		test.That(t, spatialmath.R3VectorAlmostEqual(start.Point(), scenarioGrasp, 1e-12), test.ShouldBeTrue)
		want := PitchGripperOrientation(flat, -DefaultStartPitchAngle)
		test.That(t, spatialmath.OrientationAlmostEqualEps(start.Orientation(), want, 1e-9), test.ShouldBeTrue)

		// pitched down, towards the fold line
		s := math.Sqrt2 / 2
		z := spatialmath.RotateVector(start.Orientation(), gripperZ)
		test.That(t, spatialmath.R3VectorAlmostEqual(z, r3.Vector{X: -s, Y: 0, Z: -s}, 1e-9), test.ShouldBeTrue)
	})

	t.Run("middle", func(t *testing.T) {
		mid := traj.At(traj.Duration() / 2)
		test.That(t, spatialmath.OrientationAlmostEqualEps(mid.Orientation(), middle, 1e-9), test.ShouldBeTrue)
		// halfway round the arc the point is directly below the line
		test.That(t, mid.Point().Norm(), test.ShouldAlmostEqual, 1)
		test.That(t, mid.Point().Z, test.ShouldBeLessThan, -0.99)
	})

	t.Run("end", func(t *testing.T) {
		end := traj.At(traj.Duration())
		test.That(t, spatialmath.R3VectorAlmostEqual(
			end.Point(), r3.Vector{X: -0.9991996797437437, Y: 0, Z: -0.04}, 1e-9), test.ShouldBeTrue)
		want := PitchGripperOrientation(flat, DefaultEndPitchAngle-math.Pi)
		test.That(t, spatialmath.OrientationAlmostEqualEps(end.Orientation(), want, 1e-9), test.ShouldBeTrue)
	})

	t.Run("clamps time", func(t *testing.T) {
		test.That(t, spatialmath.PoseAlmostEqual(traj.At(-3), traj.At(0)), test.ShouldBeTrue)
		test.That(t, spatialmath.PoseAlmostEqual(traj.At(1e6), traj.At(traj.Duration())), test.ShouldBeTrue)
	})

	t.Run("stays on the circle at constant speed", func(t *testing.T) {
		times, poses, err := trajectory.Sample(traj, 200)
		test.That(t, err, test.ShouldBeNil)
		for i, p := range poses {
			dist, err := spatialmath.DistanceToLine(p.Point(), scenarioLine.A, scenarioLine.B)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, dist, test.ShouldAlmostEqual, 1)
			test.That(t, p.Point().Y, test.ShouldAlmostEqual, 0)
			if i > 0 {
				chord := p.Point().Distance(poses[i-1].Point())
				test.That(t, chord/(times[i]-times[i-1]), test.ShouldAlmostEqual, DefaultSpeed, 1e-4)
			}
		}
	})

	t.Run("evaluation is repeatable and concurrent safe", func(t *testing.T) {
		want := traj.At(3.3)
		same := make([]bool, 8)
		var wg sync.WaitGroup
		for i := range same {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				same[i] = true
				for j := 0; j < 50; j++ {
					same[i] = same[i] && spatialmath.PoseAlmostEqualEps(traj.At(3.3), want, 0)
				}
			}(i)
		}
		wg.Wait()
		for _, ok := range same {
			test.That(t, ok, test.ShouldBeTrue)
		}
	})
}

func TestCircularFoldDirection(t *testing.T) {
	traj, err := CircularFoldTrajectory(scenarioGrasp, scenarioApproach, scenarioLine.Reversed(), nil)
	test.That(t, err, test.ShouldBeNil)
	end := traj.At(traj.Duration()).Point()
	test.That(t, end.Z, test.ShouldAlmostEqual, DefaultEndHeightOffset)
	test.That(t, end.X, test.ShouldAlmostEqual, -0.9991996797437437)

	mid := traj.At(traj.Duration() / 2).Point()
	test.That(t, mid.Z, test.ShouldBeGreaterThan, 0.99)
}

func TestCircularFoldConfig(t *testing.T) {
	cfg := &FoldConfig{StartPitchAngle: 0.1, EndPitchAngle: 0.3, EndHeightOffset: 0, Speed: 0.5}
	traj, err := CircularFoldTrajectory(r3.Vector{X: 2, Y: 0, Z: 0}, scenarioApproach, scenarioLine, cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, traj.Duration(), test.ShouldAlmostEqual, 2*math.Pi/0.5)
	end := traj.At(traj.Duration()).Point()
	test.That(t, spatialmath.R3VectorAlmostEqual(end, r3.Vector{X: -2, Y: 0, Z: 0}, 1e-9), test.ShouldBeTrue)

	// the middle keyframe does not depend on the pitch angles
	def, err := CircularFoldTrajectory(r3.Vector{X: 2, Y: 0, Z: 0}, scenarioApproach, scenarioLine,
		&FoldConfig{StartPitchAngle: 1, EndPitchAngle: 1, EndHeightOffset: 0, Speed: 0.5})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.OrientationAlmostEqualEps(
		traj.At(traj.Duration()/2).Orientation(), def.At(def.Duration()/2).Orientation(), 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.OrientationAlmostEqual(
		traj.At(0).Orientation(), def.At(0).Orientation()), test.ShouldBeFalse)
}

func TestCircularFoldMiddleOrientation(t *testing.T) {
	middle, err := CircularFoldMiddleOrientation(scenarioApproach, r3.Vector{X: 0, Y: 3, Z: 0})
	test.That(t, err, test.ShouldBeNil)
	// the flat gripper frame turned a quarter turn about +y
	axesAlmostEqual(t, middle, r3.Vector{X: 0, Y: 0, Z: -1}, r3.Vector{X: 0, Y: -1, Z: 0}, r3.Vector{X: -1, Y: 0, Z: 0})

	_, err = CircularFoldMiddleOrientation(r3.Vector{}, r3.Vector{X: 0, Y: 1, Z: 0})
	test.That(t, err, test.ShouldBeError, ErrZeroApproach)
	_, err = CircularFoldMiddleOrientation(scenarioApproach, r3.Vector{})
	test.That(t, err, test.ShouldBeError, spatialmath.ErrZeroAxis)
}

func TestCircularFoldErrors(t *testing.T) {
	_, err := CircularFoldTrajectory(r3.Vector{X: 0, Y: 2, Z: 0}, scenarioApproach, scenarioLine, nil)
	test.That(t, errors.Is(err, ErrDegenerateGeometry), test.ShouldBeTrue)

	_, err = CircularFoldTrajectory(scenarioGrasp, scenarioApproach, NewFoldLine(r3.Vector{}, r3.Vector{}), nil)
	test.That(t, errors.Is(err, ErrDegenerateGeometry), test.ShouldBeTrue)

	_, err = CircularFoldTrajectory(r3.Vector{X: 0.01, Y: 0, Z: 0}, scenarioApproach, scenarioLine, nil)
	test.That(t, errors.Is(err, ErrUnreachableConfiguration), test.ShouldBeTrue)

	cfg := NewDefaultFoldConfig()
	cfg.Speed = 0
	_, err = CircularFoldTrajectory(scenarioGrasp, scenarioApproach, scenarioLine, cfg)
	test.That(t, errors.Is(err, ErrInvalidSpeed), test.ShouldBeTrue)

	_, err = CircularFoldTrajectory(scenarioGrasp, r3.Vector{}, scenarioLine, nil)
	test.That(t, err, test.ShouldBeError, ErrZeroApproach)

	_, err = CircularFoldTrajectory(scenarioGrasp, r3.Vector{X: math.NaN(), Y: 0, Z: -1}, scenarioLine, nil)
	test.That(t, errors.Is(err, ErrNonFiniteVector), test.ShouldBeTrue)
	_, err = CircularFoldTrajectory(r3.Vector{X: math.Inf(1), Y: 0, Z: 0}, scenarioApproach, scenarioLine, nil)
	test.That(t, errors.Is(err, ErrNonFiniteVector), test.ShouldBeTrue)
	_, err = CircularFoldTrajectory(scenarioGrasp, scenarioApproach, NewFoldLine(r3.Vector{}, r3.Vector{X: 0, Y: 1, Z: math.NaN()}), nil)
	test.That(t, errors.Is(err, ErrNonFiniteVector), test.ShouldBeTrue)
	_, err = CircularFoldMiddleOrientation(scenarioApproach, r3.Vector{X: 0, Y: math.NaN(), Z: 0})
	test.That(t, errors.Is(err, ErrNonFiniteVector), test.ShouldBeTrue)
}
