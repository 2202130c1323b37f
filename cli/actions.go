package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/linenbot/foldmotion/spatialmath"
	"github.com/linenbot/foldmotion/trajectory"
	"github.com/linenbot/foldmotion/utils"
)

// GeometryAction prints the pivot circle of the requested fold.
func GeometryAction(c *cli.Context) error {
	plan, err := planFromFlags(c)
	if err != nil {
		return err
	}
	g := plan.Geometry
	if c.String(flagFormat) == formatJSON {
		return writeJSON(c.App.Writer, struct {
			Request  interface{} `json:"request"`
			Geometry interface{} `json:"geometry"`
			Duration float64     `json:"duration_s"`
		}{plan.Request, g, plan.Trajectory.Duration()})
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Quantity", "Value"})
	t.AppendRows([]table.Row{
		{"Projection", formatVector(g.Projection)},
		{"Radius", fmt.Sprintf("%.6f", g.Radius)},
		{"Angle delta", formatAngle(g.AngleDelta)},
		{"Max angle", formatAngle(g.MaxAngle)},
		{"Arc length", fmt.Sprintf("%.6f", g.ArcLength())},
		{"Duration (s)", fmt.Sprintf("%.6f", plan.Trajectory.Duration())},
	})
	return render(c, t)
}

type sampleRecord struct {
	Time       float64           `json:"t"`
	Position   r3.Vector         `json:"position"`
	AxisAngles *spatialmath.R4AA `json:"axis_angles"`
}

// SampleAction prints the fold trajectory at evenly spaced times.
func SampleAction(c *cli.Context) error {
	plan, err := planFromFlags(c)
	if err != nil {
		return err
	}
	times, poses, err := trajectory.SampleParallel(c.Context, plan.Trajectory, c.Int(flagSamples))
	if err != nil {
		return err
	}

	if c.String(flagFormat) == formatJSON {
		records := make([]sampleRecord, 0, len(poses))
		for i, p := range poses {
			records = append(records, sampleRecord{times[i], p.Point(), p.Orientation().AxisAngles()})
		}
		return writeJSON(c.App.Writer, records)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"t (s)", "X", "Y", "Z", "Theta (deg)", "RX", "RY", "RZ"})
	for i, p := range poses {
		pt := p.Point()
		aa := p.Orientation().AxisAngles()
		t.AppendRow(table.Row{
			fmt.Sprintf("%.4f", times[i]),
			fmt.Sprintf("%.6f", pt.X),
			fmt.Sprintf("%.6f", pt.Y),
			fmt.Sprintf("%.6f", pt.Z),
			fmt.Sprintf("%.3f", utils.RadToDeg(aa.Theta)),
			fmt.Sprintf("%.6f", aa.RX),
			fmt.Sprintf("%.6f", aa.RY),
			fmt.Sprintf("%.6f", aa.RZ),
		})
	}
	return render(c, t)
}

// ProfileAction prints the path length and speeds of the fold trajectory.
func ProfileAction(c *cli.Context) error {
	plan, err := planFromFlags(c)
	if err != nil {
		return err
	}
	profile, err := trajectory.Profile(plan.Trajectory, c.Int(flagSamples))
	if err != nil {
		return err
	}
	if c.String(flagFormat) == formatJSON {
		return writeJSON(c.App.Writer, profile)
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Quantity", "Value"})
	t.AppendRows([]table.Row{
		{"Samples", profile.Samples},
		{"Duration (s)", fmt.Sprintf("%.6f", profile.Duration)},
		{"Path length", fmt.Sprintf("%.6f", profile.PathLength)},
		{"Mean linear speed", fmt.Sprintf("%.6f", profile.MeanLinearSpeed)},
		{"Max linear speed", fmt.Sprintf("%.6f", profile.MaxLinearSpeed)},
		{"Linear speed std dev", fmt.Sprintf("%.3g", profile.LinearSpeedStdDev)},
		{"Total rotation", formatAngle(profile.TotalRotation)},
		{"Max angular speed (deg/s)", fmt.Sprintf("%.3f", utils.RadToDeg(profile.MaxAngularSpeed))},
	})
	return render(c, t)
}

// PlotAction writes a plot of the fold trajectory to a file.
func PlotAction(c *cli.Context) error {
	plan, err := planFromFlags(c)
	if err != nil {
		return err
	}
	out := c.Path(flagOut)
	if err := plotTrajectory(c.Context, plan.Trajectory, c.Int(flagSamples), out); err != nil {
		return err
	}
	printf(c.App.Writer, "Wrote %d samples of a %.3fs fold to %s", c.Int(flagSamples), plan.Trajectory.Duration(), out)
	return nil
}

func render(c *cli.Context, t table.Writer) error {
	switch format := c.String(flagFormat); format {
	case formatTable:
		t.SetStyle(table.StyleLight)
		fmt.Fprintln(c.App.Writer, t.Render())
	case formatCSV:
		fmt.Fprintln(c.App.Writer, t.RenderCSV())
	case formatMarkdown:
		fmt.Fprintln(c.App.Writer, t.RenderMarkdown())
	default:
		return errors.Errorf("unknown output format %q", format)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

func formatVector(v r3.Vector) string {
	return fmt.Sprintf("X:%.6f, Y:%.6f, Z:%.6f", v.X, v.Y, v.Z)
}

func formatAngle(rad float64) string {
	return fmt.Sprintf("%.6f rad (%.3f deg)", rad, utils.RadToDeg(rad))
}
