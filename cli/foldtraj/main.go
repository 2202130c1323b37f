// Package main is the foldtraj command itself.
package main

import (
	"os"

	"github.com/linenbot/foldmotion/cli"
	"github.com/linenbot/foldmotion/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logger := logging.NewBlankLogger("foldtraj")
		logger.AddAppender(logging.NewWriterAppender(os.Stderr))
		logger.Error(err)
		//nolint:errcheck
		logger.Sync()
		os.Exit(1)
	}
}
