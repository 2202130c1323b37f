// Package cli contains the foldtraj command line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
)

// CLI flags.
const (
	flagDebug  = "debug"
	flagFormat = "format"

	flagRequest         = "request"
	flagGrasp           = "grasp"
	flagApproach        = "approach"
	flagLineA           = "line-a"
	flagLineB           = "line-b"
	flagStartPitch      = "start-pitch"
	flagEndPitch        = "end-pitch"
	flagEndHeightOffset = "end-height-offset"
	flagSpeed           = "speed"
	flagDegrees         = "degrees"

	flagSamples = "samples"
	flagOut     = "out"
)

// Output formats.
const (
	formatTable    = "table"
	formatCSV      = "csv"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

var requestFlags = []cli.Flag{
	&cli.PathFlag{
		Name:    flagRequest,
		Aliases: []string{"r"},
		Usage:   "load the fold request from a YAML or JSON `FILE`; other request flags override it",
	},
	&cli.Float64SliceFlag{
		Name:  flagGrasp,
		Usage: "grasp location as `X,Y,Z`",
	},
	&cli.Float64SliceFlag{
		Name:  flagApproach,
		Usage: "gripper approach direction as `X,Y,Z`",
	},
	&cli.Float64SliceFlag{
		Name:  flagLineA,
		Usage: "first point on the fold line as `X,Y,Z`",
	},
	&cli.Float64SliceFlag{
		Name:  flagLineB,
		Usage: "second point on the fold line as `X,Y,Z`; the fold turns right handed about B - A",
	},
	&cli.Float64Flag{
		Name:  flagStartPitch,
		Usage: "how far the gripper is pitched down at the grasp",
	},
	&cli.Float64Flag{
		Name:  flagEndPitch,
		Usage: "how far the gripper is pitched up at release",
	},
	&cli.BoolFlag{
		Name:  flagDegrees,
		Usage: "pitch angles are given in degrees rather than radians",
	},
	&cli.Float64Flag{
		Name:  flagEndHeightOffset,
		Usage: "clearance left above the fully folded position",
	},
	&cli.Float64Flag{
		Name:  flagSpeed,
		Usage: "speed of the grasped point along the arc",
	},
}

func samplesFlag(value int) cli.Flag {
	return &cli.IntFlag{
		Name:    flagSamples,
		Aliases: []string{"n"},
		Value:   value,
		Usage:   "number of evenly spaced samples, both ends included",
	}
}

func withRequestFlags(flags ...cli.Flag) []cli.Flag {
	return append(append([]cli.Flag{}, requestFlags...), flags...)
}

var app = &cli.App{
	Name:            "foldtraj",
	Usage:           "plan circular fold trajectories for a cloth folding gripper",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    flagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.StringFlag{
			Name:    flagFormat,
			Aliases: []string{"f"},
			Value:   formatTable,
			Usage: fmt.Sprintf("output format, one of %s, %s, %s or %s",
				formatTable, formatCSV, formatMarkdown, formatJSON),
		},
	},
	Commands: []*cli.Command{
		{
			Name:   "geometry",
			Usage:  "show the pivot circle of a fold",
			Flags:  withRequestFlags(),
			Action: GeometryAction,
		},
		{
			Name:   "sample",
			Usage:  "sample the fold trajectory at evenly spaced times",
			Flags:  withRequestFlags(samplesFlag(11)),
			Action: SampleAction,
		},
		{
			Name:   "profile",
			Usage:  "summarize the path length and speeds of the fold trajectory",
			Flags:  withRequestFlags(samplesFlag(1001)),
			Action: ProfileAction,
		},
		{
			Name:      "plot",
			Usage:     "plot the position and rotation of the fold trajectory over time",
			UsageText: fmt.Sprintf("foldtraj plot --%s <FILE> [request options]", flagOut),
			Flags: withRequestFlags(
				samplesFlag(201),
				&cli.PathFlag{
					Name:     flagOut,
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "write the plot to `FILE`; the extension picks the image format (png, svg, pdf)",
				},
			),
			Action: PlotAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
