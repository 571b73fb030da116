package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// Set with -ldflags at build time
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "pairfeat: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:                 "pairfeat",
		Usage:                "extract linguistic features of mention pairs for external classifiers",
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		HideVersion:          true,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file selecting feature sets and head rules",
				EnvVars: []string{"PAIRFEAT_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "do not show progress bars",
				EnvVars: []string{"PAIRFEAT_QUIET"},
			},
		},
		// errors are printed by main
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			corefCommand(ui),
			relationCommand(ui),
			nerCommand(ui),
			importCommand(ui),
			taggedCommand(ui),
			attributesCommand(ui),
			statsCommand(ui),
			evaluateCommand(ui),
			treeCommand(ui),
			inspectCommand(ui),
			versionCommand(ui),
		},
	}
}
