package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/revelaction/pairfeat/config"
	"github.com/revelaction/pairfeat/lexicon"
	"github.com/revelaction/pairfeat/storage"
	"github.com/revelaction/pairfeat/storage/filesystem"
	"github.com/revelaction/pairfeat/storage/sqlite/zombiezen"

	"github.com/urfave/cli/v2"
)

const (
	taskCoref    = "coref"
	taskRelation = "relation"
)

func resourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "resources",
			Aliases: []string{"r"},
			Usage:   "corpus directory, or a .db file written by import",
			Value:   "data",
			EnvVars: []string{"PAIRFEAT_RESOURCES"},
		},
		&cli.StringFlag{
			Name:    "json-dir",
			Usage:   "tagged sentence files (default <resources>/jsons)",
			EnvVars: []string{"PAIRFEAT_JSON_DIR"},
		},
		&cli.StringFlag{
			Name:    "parsed-dir",
			Usage:   "parsed files (default <resources>/parsed)",
			EnvVars: []string{"PAIRFEAT_PARSED_DIR"},
		},
		&cli.IntFlag{
			Name:    "cache",
			Usage:   "number of documents kept in memory",
			Value:   1,
			EnvVars: []string{"PAIRFEAT_CACHE"},
		},
	}
}

func lexiconFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "gender", Usage: "first name to gender JSON", EnvVars: []string{"PAIRFEAT_GENDER"}},
		&cli.StringFlag{Name: "demonym", Usage: "place to demonym JSON", EnvVars: []string{"PAIRFEAT_DEMONYM"}},
		&cli.StringFlag{Name: "geo", Usage: "place to geographic type JSON", EnvVars: []string{"PAIRFEAT_GEO"}},
	}
}

func taskFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "resource layout: coref or relation",
		Value:   taskCoref,
		EnvVars: []string{"PAIRFEAT_TASK"},
	}
}

// layout returns the filesystem layout of task under the resource flags.
func layout(c *cli.Context, task string) (filesystem.Layout, error) {
	jsonDir := c.String("json-dir")
	if jsonDir == "" {
		jsonDir = filepath.Join(c.String("resources"), "jsons")
	}
	parsedDir := c.String("parsed-dir")
	if parsedDir == "" {
		parsedDir = filepath.Join(c.String("resources"), "parsed")
	}

	switch task {
	case taskCoref:
		return filesystem.CorefLayout(jsonDir, parsedDir), nil
	case taskRelation:
		return filesystem.RelationLayout(jsonDir, parsedDir), nil
	}
	return filesystem.Layout{}, fmt.Errorf("unknown task %q, want coref or relation", task)
}

// NewDocRepository opens the documents of task, from a sqlite file or from
// the filesystem layout.
func NewDocRepository(c *cli.Context, p *Pool, task string) (storage.DocRepository, error) {
	path := c.String("resources")

	if zombiezen.IsDB(path) {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("repository not found: %s", path)
		}
		pool, err := p.Open(path)
		if err != nil {
			return nil, err
		}
		return zombiezen.NewDocStore(pool), nil
	}

	l, err := layout(c, task)
	if err != nil {
		return nil, err
	}
	return filesystem.NewDocStore(l)
}

func loadLexicon(c *cli.Context) (*lexicon.Lexicon, error) {
	return lexicon.Load(lexicon.Paths{
		Gender:    c.String("gender"),
		Demonym:   c.String("demonym"),
		Geo:       c.String("geo"),
		Brown:     c.String("brown"),
		Gazetteer: c.String("gazetteer"),
	})
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	return config.Load(c.String("config"))
}
