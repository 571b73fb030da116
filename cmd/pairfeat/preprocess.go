package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/pairfeat/storage/filesystem"

	"github.com/urfave/cli/v2"
)

func dirFlags(fromUsage, toUsage string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "from",
			Usage:    fromUsage,
			Required: true,
		},
		&cli.StringFlag{
			Name:     "to",
			Usage:    toUsage,
			Required: true,
		},
	}
}

// taggedCommand converts POS tagged files to sentence JSON files.
func taggedCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "tagged",
		Usage: "convert word_TAG .pos files to sentence .json files",
		Flags: dirFlags("directory of .pos files", "directory for the .json files"),
		Action: func(c *cli.Context) error {
			from, to := c.String("from"), c.String("to")
			names, err := filesystem.ListSuffix(from, ".pos")
			if err != nil {
				return err
			}
			if err := os.MkdirAll(to, 0o755); err != nil {
				return fmt.Errorf("IO error: %w", err)
			}

			tick, stop := newProgress(c, ui, len(names), "tagged")
			for _, name := range names {
				sentences, err := filesystem.ReadTagged(filepath.Join(from, name+".pos"))
				if err != nil {
					stop()
					return fmt.Errorf("failed to read %s: %w", name, err)
				}
				if err := filesystem.WritePairs(filepath.Join(to, name+".json"), sentences); err != nil {
					stop()
					return fmt.Errorf("failed to write %s: %w", name, err)
				}
				tick()
			}
			stop()

			fmt.Fprintf(ui.Out, "Successfully converted %d files to %s\n", len(names), to)
			return nil
		},
	}
}

// attributesCommand builds the token attribute files of the relation
// corpus from sentence files and the entity maps of the data splits.
func attributesCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "attributes",
		Usage: "write token attribute files with entity types",
		Flags: append(dirFlags("directory of sentence .json files", "directory for the attribute files"),
			&cli.StringSliceFlag{
				Name:     "entities",
				Usage:    "entity map files, earlier files win (train, dev, test)",
				Required: true,
				EnvVars:  []string{"PAIRFEAT_ENTITIES"},
			},
		),
		Action: func(c *cli.Context) error {
			from, to := c.String("from"), c.String("to")

			entities, err := filesystem.ReadEntities(c.StringSlice("entities")...)
			if err != nil {
				return err
			}

			names, err := filesystem.ListSuffix(from, ".json")
			if err != nil {
				return err
			}
			// entity maps may share the directory
			skip := map[string]bool{}
			for _, p := range c.StringSlice("entities") {
				skip[strings.TrimSuffix(filepath.Base(p), ".json")] = true
			}

			if err := os.MkdirAll(to, 0o755); err != nil {
				return fmt.Errorf("IO error: %w", err)
			}

			written := 0
			tick, stop := newProgress(c, ui, len(names), "attributes")
			for _, name := range names {
				if skip[name] || strings.HasSuffix(name, ".original") {
					tick()
					continue
				}
				sentences, err := filesystem.ReadSentences(filepath.Join(from, name+".json"))
				if err != nil {
					stop()
					return fmt.Errorf("failed to read %s: %w", name, err)
				}
				id := strings.TrimSuffix(name, ".raw")
				annotated := entities.Annotate(id, sentences)
				if err := filesystem.WriteAttributes(filepath.Join(to, name+".json"), annotated); err != nil {
					stop()
					return fmt.Errorf("failed to write %s: %w", name, err)
				}
				written++
				tick()
			}
			stop()

			fmt.Fprintf(ui.Out, "Successfully wrote %d attribute files to %s\n", written, to)
			return nil
		},
	}
}
