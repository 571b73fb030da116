package main

import (
	"fmt"

	"github.com/revelaction/pairfeat/storage/filesystem"
	"github.com/revelaction/pairfeat/storage/sqlite/zombiezen"

	"github.com/urfave/cli/v2"
)

func importCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "copy a filesystem corpus into a sqlite file",
		Flags: append([]cli.Flag{
			taskFlag(),
			&cli.StringFlag{
				Name:     "to",
				Usage:    "destination .db file",
				Required: true,
				EnvVars:  []string{"PAIRFEAT_DB"},
			},
		}, resourceFlags()...),
		Action: func(c *cli.Context) error {
			to := c.String("to")
			if !zombiezen.IsDB(to) {
				return fmt.Errorf("destination %s is not a .db or .sqlite file", to)
			}

			l, err := layout(c, c.String("task"))
			if err != nil {
				return err
			}
			src, err := filesystem.NewDocStore(l)
			if err != nil {
				return err
			}

			pool, err := zombiezen.NewPool(to)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := zombiezen.CreateSchemas(pool, zombiezen.DocsSchema); err != nil {
				return fmt.Errorf("failed to create docs table: %w", err)
			}
			dst := zombiezen.NewDocStore(pool)

			fmt.Fprintf(ui.Out, "Reading docs from %s...\n", l.JSONDir)
			ids, err := src.List()
			if err != nil {
				return err
			}

			tick, stop := newProgress(c, ui, len(ids), "import")
			for _, id := range ids {
				doc, err := src.Read(id)
				if err != nil {
					stop()
					return fmt.Errorf("failed to read doc %s: %w", id, err)
				}
				if err := dst.Write(doc); err != nil {
					stop()
					return fmt.Errorf("failed to write doc %s: %w", id, err)
				}
				tick()
			}
			stop()

			fmt.Fprintf(ui.Out, "Successfully imported %d docs to %s\n", len(ids), to)
			return nil
		},
	}
}
