package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/revelaction/pairfeat/extract"
	"github.com/revelaction/pairfeat/feature"
	"github.com/revelaction/pairfeat/mention"
	"github.com/revelaction/pairfeat/render"
	"github.com/revelaction/pairfeat/storage"

	"github.com/urfave/cli/v2"
)

const (
	modeTrain = "train"
	modeTest  = "test"
)

func extractFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "output format: features, tree or json",
			Value:   render.FormatFeatures,
			EnvVars: []string{"PAIRFEAT_FORMAT"},
		},
		&cli.StringFlag{
			Name:    "tree",
			Usage:   "tree kernel output: path-enclosed or minimum-complete, implies --format tree",
			EnvVars: []string{"PAIRFEAT_TREE"},
		},
		&cli.StringFlag{
			Name:    "tree-attribute",
			Usage:   "replace mention words in the pair tree: entity_type, hypernym or pos",
			EnvVars: []string{"PAIRFEAT_TREE_ATTRIBUTE"},
		},
		&cli.StringFlag{
			Name:    "alphabet",
			Usage:   "feature index file of the tree format, written on train and read on test",
			EnvVars: []string{"PAIRFEAT_ALPHABET"},
		},
		&cli.StringFlag{
			Name:    "label",
			Usage:   "one-vs-rest: label 1 for this label and -1 for the rest",
			EnvVars: []string{"PAIRFEAT_LABEL"},
		},
	}
	flags = append(flags, resourceFlags()...)
	return append(flags, lexiconFlags()...)
}

func corefCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      taskCoref,
		Usage:     "extract coreference pair features",
		ArgsUsage: "<in> <out> train|test",
		Flags:     extractFlags(),
		Action: func(c *cli.Context) error {
			return pairCommand(c, ui, taskCoref, mention.Coref)
		},
	}
}

func relationCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      taskRelation,
		Usage:     "extract relation pair features",
		ArgsUsage: "<in> <out> train|test",
		Flags:     extractFlags(),
		Action: func(c *cli.Context) error {
			return pairCommand(c, ui, taskRelation, mention.Relation)
		},
	}
}

func pairArgs(c *cli.Context) (string, string, bool, error) {
	if c.NArg() != 3 {
		return "", "", false, fmt.Errorf("usage: pairfeat %s %s", c.Command.Name, c.Command.ArgsUsage)
	}
	mode := c.Args().Get(2)
	if mode != modeTrain && mode != modeTest {
		return "", "", false, fmt.Errorf("mode must be %s or %s, got %q", modeTrain, modeTest, mode)
	}
	return c.Args().Get(0), c.Args().Get(1), mode == modeTrain, nil
}

func pairCommand(c *cli.Context, ui UI, task string, l mention.Layout) (err error) {
	in, out, train, err := pairArgs(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	var set feature.Set
	if task == taskCoref {
		set, err = cfg.CorefSet()
	} else {
		set, err = cfg.RelationSet()
	}
	if err != nil {
		return err
	}

	lex, err := loadLexicon(c)
	if err != nil {
		return err
	}

	var pool Pool
	defer pool.Close()
	repo, err := NewDocRepository(c, &pool, task)
	if err != nil {
		return err
	}

	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	lines, err := extract.ReadLines(f)
	f.Close()
	if err != nil {
		return err
	}

	e := extract.New(l, storage.NewCache(repo, c.Int("cache")), set)
	e.Lex = lex
	e.Heads = cfg.HeadFinder()

	format := c.String("format")
	mode := c.String("tree")
	if mode != "" {
		format = render.FormatTree
	}
	var alphabet *render.Alphabet
	if format == render.FormatTree {
		if mode == "" {
			mode = feature.PathEnclosed
		}
		if e.Kernel, err = feature.NewKernel(mode, c.String("tree-attribute")); err != nil {
			return err
		}
		if alphabet, err = openAlphabet(c.String("alphabet"), train); err != nil {
			return err
		}
	}

	formatter, err := render.NewFormatter(format, alphabet)
	if err != nil {
		return err
	}

	w, err := render.Create(out, formatter, train)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
	}()
	w.Label = c.String("label")

	tick, stop := newProgress(c, ui, len(lines), task)
	e.Progress = tick
	err = e.Run(lines, w)
	stop()
	if err != nil {
		return err
	}

	if train && alphabet != nil {
		return saveAlphabet(c.String("alphabet"), alphabet)
	}
	return nil
}

// openAlphabet returns nil without a path. Test runs read the train
// alphabet and do not grow it.
func openAlphabet(path string, train bool) (*render.Alphabet, error) {
	if path == "" {
		return nil, nil
	}
	if train {
		return render.NewAlphabet(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	a, err := render.LoadAlphabet(f)
	if err != nil {
		return nil, err
	}
	a.Frozen = true
	return a, nil
}

func saveAlphabet(path string, a *render.Alphabet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	if err := a.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("IO error: %w", err)
	}
	return f.Close()
}
