package cli

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/linenbot/foldmotion/folding"
	"github.com/linenbot/foldmotion/logging"
	"github.com/linenbot/foldmotion/utils"
)

// newLogger writes to the error writer so command output stays machine readable.
func newLogger(c *cli.Context) logging.Logger {
	logger := logging.NewBlankLogger("foldtraj")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if c.Bool(flagDebug) {
		logger.SetLevel(logging.DEBUG)
	} else {
		logger.SetLevel(logging.INFO)
	}
	return logger
}

// requestFromFlags builds a fold request from the --request file, if any, overridden by individual flags.
func requestFromFlags(c *cli.Context) (*folding.FoldRequest, error) {
	req := &folding.FoldRequest{Config: folding.NewDefaultFoldConfig()}
	if path := c.Path(flagRequest); path != "" {
		loaded, err := folding.LoadFoldRequest(path)
		if err != nil {
			return nil, err
		}
		req = loaded
	}
	if req.Config == nil {
		req.Config = folding.NewDefaultFoldConfig()
	}

	for _, v := range []struct {
		flag string
		dst  *r3.Vector
	}{
		{flagGrasp, &req.GraspLocation},
		{flagApproach, &req.ApproachDirection},
		{flagLineA, &req.FoldLine.A},
		{flagLineB, &req.FoldLine.B},
	} {
		if !c.IsSet(v.flag) {
			continue
		}
		vec, err := vectorFlag(c, v.flag)
		if err != nil {
			return nil, err
		}
		*v.dst = vec
	}

	angle := func(v float64) float64 { return v }
	if c.Bool(flagDegrees) {
		angle = utils.DegToRad
	}
	if c.IsSet(flagStartPitch) {
		req.Config.StartPitchAngle = angle(c.Float64(flagStartPitch))
	}
	if c.IsSet(flagEndPitch) {
		req.Config.EndPitchAngle = angle(c.Float64(flagEndPitch))
	}
	if c.IsSet(flagEndHeightOffset) {
		req.Config.EndHeightOffset = c.Float64(flagEndHeightOffset)
	}
	if c.IsSet(flagSpeed) {
		req.Config.Speed = c.Float64(flagSpeed)
	}

	if err := req.Validate("request"); err != nil {
		return nil, err
	}
	return req, nil
}

func vectorFlag(c *cli.Context, name string) (r3.Vector, error) {
	xyz := c.Float64Slice(name)
	if len(xyz) != 3 {
		return r3.Vector{}, errors.Errorf("--%s needs exactly 3 comma separated values, got %d", name, len(xyz))
	}
	return r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func planFromFlags(c *cli.Context) (*folding.FoldPlan, error) {
	req, err := requestFromFlags(c)
	if err != nil {
		return nil, err
	}
	return folding.PlanFold(newLogger(c).Sublogger(c.Command.Name), req)
}
