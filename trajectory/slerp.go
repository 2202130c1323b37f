package trajectory

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"

	"github.com/linenbot/foldmotion/spatialmath"
)

// Slerp interpolates between orientation keyframes along the shortest arc between each consecutive pair.
type Slerp struct {
	times []float64
	quats []quat.Number
}

// NewSlerp returns the orientation trajectory passing through orientations[i] at times[i]. Times must
// start at 0 and be strictly increasing, and at least two keyframes are required.
func NewSlerp(times []float64, orientations []spatialmath.Orientation) (*Slerp, error) {
	if len(times) != len(orientations) {
		return nil, errors.Wrapf(ErrInvalidKeyframes, "%d times but %d orientations", len(times), len(orientations))
	}
	if len(times) < 2 {
		return nil, errors.Wrapf(ErrInvalidKeyframes, "need at least 2 keyframes, got %d", len(times))
	}
	if floats.HasNaN(times) {
		return nil, errors.Wrap(ErrInvalidKeyframes, "times contain NaN")
	}
	if times[0] != 0 {
		return nil, errors.Wrapf(ErrInvalidKeyframes, "first keyframe must be at time 0, got %v", times[0])
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, errors.Wrapf(ErrInvalidKeyframes, "times must be strictly increasing, got %v after %v", times[i], times[i-1])
		}
	}

	quats := make([]quat.Number, len(orientations))
	for i, o := range orientations {
		if o == nil {
			return nil, errors.Wrapf(ErrInvalidKeyframes, "orientation %d is nil", i)
		}
		q := spatialmath.Normalize(o.Quaternion())
		// keep consecutive keyframes in the same hemisphere so the quaternion path is continuous too
		if i > 0 && quatDot(quats[i-1], q) < 0 {
			q = spatialmath.Flip(q)
		}
		quats[i] = q
	}

	return &Slerp{times: append([]float64(nil), times...), quats: quats}, nil
}

// At returns the interpolated orientation at time t.
func (s *Slerp) At(t float64) spatialmath.Orientation {
	t = Clamp(t, s.Duration())
	// index of the first keyframe strictly after t, so t lies in [times[i-1], times[i])
	i := sort.Search(len(s.times), func(i int) bool { return s.times[i] > t })
	if i >= len(s.times) {
		q := spatialmath.Quaternion(s.quats[len(s.quats)-1])
		return &q
	}
	t0, t1 := s.times[i-1], s.times[i]
	q := spatialmath.Quaternion(spatialmath.Normalize(slerpQuat(s.quats[i-1], s.quats[i], (t-t0)/(t1-t0))))
	return &q
}

// Duration returns the time of the last keyframe.
func (s *Slerp) Duration() float64 {
	return s.times[len(s.times)-1]
}

// Times returns a copy of the keyframe times.
func (s *Slerp) Times() []float64 {
	return append([]float64(nil), s.times...)
}

func slerpQuat(q1, q2 quat.Number, by float64) quat.Number {
	a, b := spatialmath.Quaternion(q1), spatialmath.Quaternion(q2)
	return spatialmath.Interpolate(&a, &b, by).Quaternion()
}

func quatDot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}
