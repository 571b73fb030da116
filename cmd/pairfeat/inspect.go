package main

import (
	"fmt"

	"github.com/revelaction/pairfeat/inspect"
	"github.com/revelaction/pairfeat/render"

	"github.com/urfave/cli/v2"
)

func inspectCommand(ui UI) *cli.Command {
	flags := append([]cli.Flag{
		taskFlag(),
		&cli.BoolFlag{Name: "no-color", Usage: "do not highlight mentions"},
	}, resourceFlags()...)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "browse the sentences, trees and pair features of a document",
		ArgsUsage: "<doc>",
		Flags:     append(flags, lexiconFlags()...),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("usage: pairfeat inspect %s", c.Command.ArgsUsage)
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			lex, err := loadLexicon(c)
			if err != nil {
				return err
			}

			var pool Pool
			defer pool.Close()
			repo, err := NewDocRepository(c, &pool, c.String("task"))
			if err != nil {
				return err
			}
			doc, err := repo.Read(c.Args().First())
			if err != nil {
				return err
			}

			r := render.NewRenderer(ui.Out)
			r.HasColor = !c.Bool("no-color")

			h := inspect.NewHandler(&doc, lex, r)
			h.Heads = cfg.HeadFinder()
			if h.Coref, err = cfg.CorefSet(); err != nil {
				return err
			}
			if h.Relation, err = cfg.RelationSet(); err != nil {
				return err
			}
			return h.Run()
		},
	}
}
