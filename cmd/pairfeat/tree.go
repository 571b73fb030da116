package main

import (
	"fmt"
	"strconv"

	"github.com/revelaction/pairfeat/render"
	"github.com/revelaction/pairfeat/tree"

	"github.com/urfave/cli/v2"
)

func treeCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "print the tree of a sentence and, for two leaves, their path and heads",
		ArgsUsage: "<doc> <sentence> [<leaf> <leaf>]",
		Flags:     append([]cli.Flag{taskFlag()}, resourceFlags()...),
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 && c.NArg() != 4 {
				return fmt.Errorf("usage: pairfeat tree %s", c.Command.ArgsUsage)
			}
			nums := make([]int, c.NArg()-1)
			for i := range nums {
				n, err := strconv.Atoi(c.Args().Get(i + 1))
				if err != nil {
					return fmt.Errorf("argument %q is not a number", c.Args().Get(i+1))
				}
				nums[i] = n
			}

			cfg, err := loadConfig(c)
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

			t, err := doc.Tree(nums[0])
			if err != nil {
				return err
			}

			r := render.NewRenderer(ui.Out)
			r.Tree(t)
			if len(nums) == 1 {
				return nil
			}

			p, err := tree.Paths(t, nums[1], nums[2])
			if err != nil {
				return err
			}
			r.Path(p)

			sub, err := tree.MinimumComplete(t, nums[1], nums[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(ui.Out, "lca:   %s\n", sub.Label)
			fmt.Fprintf(ui.Out, "head:  %s\n", cfg.HeadFinder().Head(sub))
			return nil
		},
	}
}
