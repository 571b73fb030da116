package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/revelaction/pairfeat/extract"
	"github.com/revelaction/pairfeat/lexicon"

	"github.com/urfave/cli/v2"
)

func nerCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "ner",
		Usage:     "add token feature columns to a BIO tagged file",
		ArgsUsage: "<in> <out>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "brown", Usage: "Brown cluster paths file", EnvVars: []string{"PAIRFEAT_BROWN"}},
			&cli.StringFlag{Name: "gazetteer", Usage: "GeoLite2 locations CSV", EnvVars: []string{"PAIRFEAT_GAZETTEER"}},
		},
		Action: func(c *cli.Context) (err error) {
			if c.NArg() != 2 {
				return fmt.Errorf("usage: pairfeat ner %s", c.Command.ArgsUsage)
			}

			lex, err := lexicon.Load(lexicon.Paths{
				Brown:     c.String("brown"),
				Gazetteer: c.String("gazetteer"),
			})
			if err != nil {
				return err
			}

			total, err := countLines(c.Args().Get(0))
			if err != nil {
				return err
			}

			in, err := os.Open(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("IO error: %w", err)
			}
			defer in.Close()

			out, err := os.Create(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("IO error: %w", err)
			}
			defer func() {
				err = errors.Join(err, out.Close())
			}()

			tick, stop := newProgress(c, ui, total, "ner")
			defer stop()
			return extract.Tokens(in, out, lex, tick)
		},
	}
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("IO error: %w", err)
	}
	return n, nil
}
