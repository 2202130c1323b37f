package trajectory

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/linenbot/foldmotion/spatialmath"
)

func TestCombine(t *testing.T) {
	arc, err := NewCircularArcPosition(r3.Vector{X: 2, Y: 0, Z: 0}, r3.Vector{}, r3.Vector{X: 0, Y: 0, Z: 1}, math.Pi/2, 1)
	test.That(t, err, test.ShouldBeNil)
	oris, err := NewSlerp([]float64{0, arc.Duration()}, []spatialmath.Orientation{rz(0), rz(math.Pi / 2)})
	test.That(t, err, test.ShouldBeNil)

	poses, err := Combine(oris, arc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, poses.Duration(), test.ShouldEqual, arc.Duration())

	end := poses.At(poses.Duration())
	test.That(t, spatialmath.PoseAlmostEqual(end, spatialmath.NewPose(r3.Vector{X: 0, Y: 2, Z: 0}, rz(math.Pi/2))), test.ShouldBeTrue)
	test.That(t, spatialmath.PoseAlmostEqual(poses.At(-5), poses.At(0)), test.ShouldBeTrue)
	test.That(t, spatialmath.PoseAlmostEqual(poses.At(50), end), test.ShouldBeTrue)

	t.Run("components", func(t *testing.T) {
		mid := poses.Duration() / 2
		test.That(t, Positions(poses).At(mid), test.ShouldResemble, arc.At(mid))
		test.That(t, spatialmath.OrientationAlmostEqual(Orientations(poses).At(mid), oris.At(mid)), test.ShouldBeTrue)
		test.That(t, Positions(poses).Duration(), test.ShouldEqual, poses.Duration())
	})

	t.Run("duration mismatch", func(t *testing.T) {
		short, err := NewSlerp([]float64{0, 1}, []spatialmath.Orientation{rz(0), rz(1)})
		test.That(t, err, test.ShouldBeNil)
		_, err = Combine(short, arc)
		test.That(t, errors.Is(err, ErrDurationMismatch), test.ShouldBeTrue)
	})

	t.Run("tolerates rounding", func(t *testing.T) {
		nearly := NewFunc(arc.Duration()*(1+1e-12), func(float64) spatialmath.Orientation { return rz(0) })
		_, err := Combine(nearly, arc)
		test.That(t, err, test.ShouldBeNil)
	})
}

func TestFunc(t *testing.T) {
	var seen []float64
	traj := NewFunc(2, func(t float64) float64 {
		seen = append(seen, t)
		return t * t
	})
	test.That(t, traj.At(-1), test.ShouldEqual, 0.)
	test.That(t, traj.At(1), test.ShouldEqual, 1.)
	test.That(t, traj.At(3), test.ShouldEqual, 4.)
	test.That(t, seen, test.ShouldResemble, []float64{0, 1, 2})
	test.That(t, Clamp(-0.5, 1), test.ShouldEqual, 0.)
}
