package folding

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/linenbot/foldmotion/spatialmath"
)

// Defaults for a circular fold.
const (
	DefaultStartPitchAngle = math.Pi / 4
	DefaultEndPitchAngle   = math.Pi / 4
	DefaultEndHeightOffset = 0.04
	DefaultSpeed           = 0.25
)

// FoldConfig holds the tunable parameters of a circular fold. Angles are in radians, the height offset is
// in the same length unit as the grasp location and the speed is that unit per second along the arc.
type FoldConfig struct {
	// StartPitchAngle is how far the gripper is pitched down at the grasp.
	StartPitchAngle float64 `json:"start_pitch_angle_rad"`
	// EndPitchAngle is how far the gripper is pitched up, relative to flipped, at release.
	EndPitchAngle float64 `json:"end_pitch_angle_rad"`
	// EndHeightOffset is the clearance left above the fully folded position.
	EndHeightOffset float64 `json:"end_height_offset"`
	Speed           float64 `json:"speed"`
}

// NewDefaultFoldConfig returns a config populated with the defaults.
func NewDefaultFoldConfig() *FoldConfig {
	return &FoldConfig{
		StartPitchAngle: DefaultStartPitchAngle,
		EndPitchAngle:   DefaultEndPitchAngle,
		EndHeightOffset: DefaultEndHeightOffset,
		Speed:           DefaultSpeed,
	}
}

// Validate ensures all parts of the config are valid.
func (cfg *FoldConfig) Validate(path string) error {
	var errs error
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"start_pitch_angle_rad", cfg.StartPitchAngle},
		{"end_pitch_angle_rad", cfg.EndPitchAngle},
		{"end_height_offset", cfg.EndHeightOffset},
	} {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) {
			errs = multierr.Append(errs, errors.Errorf("%s must be finite, got %v", field.name, field.value))
		}
	}
	if !(cfg.Speed > 0) || math.IsInf(cfg.Speed, 0) {
		errs = multierr.Append(errs, errors.Wrapf(ErrInvalidSpeed, "got %v", cfg.Speed))
	}
	if errs != nil {
		return goutils.NewConfigValidationError(path, errs)
	}
	return nil
}

// FoldRequest is everything needed to plan a circular fold.
type FoldRequest struct {
	GraspLocation     r3.Vector   `json:"grasp_location"`
	ApproachDirection r3.Vector   `json:"approach_direction"`
	FoldLine          FoldLine    `json:"fold_line"`
	Config            *FoldConfig `json:"config,omitempty"`
}

// NewFoldRequest returns a request using the default config.
func NewFoldRequest(grasp, approach r3.Vector, line FoldLine) *FoldRequest {
	return &FoldRequest{
		GraspLocation:     grasp,
		ApproachDirection: approach,
		FoldLine:          line,
		Config:            NewDefaultFoldConfig(),
	}
}

// Validate ensures all parts of the request are valid. A nil config is replaced by the defaults.
func (req *FoldRequest) Validate(path string) error {
	var errs error
	for _, field := range []struct {
		name  string
		value r3.Vector
	}{
		{"grasp_location", req.GraspLocation},
		{"approach_direction", req.ApproachDirection},
		{"fold_line.a", req.FoldLine.A},
		{"fold_line.b", req.FoldLine.B},
	} {
		if !spatialmath.R3VectorIsFinite(field.value) {
			errs = multierr.Append(errs, errors.Wrapf(ErrNonFiniteVector, "%s is %v", field.name, field.value))
		}
	}
	if errs != nil {
		return goutils.NewConfigValidationError(path, errs)
	}
	if req.ApproachDirection.Norm() == 0 {
		return goutils.NewConfigValidationFieldRequiredError(path, "approach_direction")
	}
	if req.FoldLine.Direction().Norm() == 0 {
		return goutils.NewConfigValidationError(fmt.Sprintf("%s.%s", path, "fold_line"),
			errors.Wrap(ErrDegenerateGeometry, "fold line points a and b must differ"))
	}
	if req.Config == nil {
		req.Config = NewDefaultFoldConfig()
	}
	return req.Config.Validate(fmt.Sprintf("%s.%s", path, "config"))
}
