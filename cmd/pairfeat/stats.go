package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/revelaction/pairfeat/render"
	"github.com/revelaction/pairfeat/stat"

	"github.com/urfave/cli/v2"
)

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "print as JSON"}
}

func statsCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "count the records of each label in a labeled file",
		ArgsUsage: "<labeled file>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "exclude", Usage: "labels left out of the listing"},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			h, err := aggregate(c)
			if err != nil {
				return err
			}

			stats := h.Get()
			if c.Bool("json") {
				return render.NewJSONRenderer(ui.Out).Render(stats)
			}

			fmt.Fprintf(ui.Out, "Num records %d\n", stats.NumRecords)
			for _, lc := range stats.Sorted(c.StringSlice("exclude")...) {
				fmt.Fprintf(ui.Out, "%8d %s\n", lc.Count, lc.Label)
			}
			return nil
		},
	}
}

// scoreView is the JSON form of a stat.Score
type scoreView struct {
	Feature   string  `json:"feature"`
	TP        int     `json:"tp"`
	TN        int     `json:"tn"`
	FP        int     `json:"fp"`
	FN        int     `json:"fn"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

func evaluateCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "evaluate",
		Usage:     "score each feature of a labeled file as a predictor of the positive label",
		ArgsUsage: "<labeled file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "positive", Value: "yes", Usage: "positive label"},
			&cli.StringFlag{Name: "negative", Value: "no", Usage: "negative label"},
			&cli.StringSliceFlag{Name: "skip", Usage: "feature prefixes left out"},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			h, err := aggregate(c)
			if err != nil {
				return err
			}

			scores := h.Evaluate(c.String("positive"), c.String("negative"), c.StringSlice("skip")...)

			if c.Bool("json") {
				views := make([]scoreView, len(scores))
				for i, s := range scores {
					views[i] = scoreView{s.Feature, s.TP, s.TN, s.FP, s.FN, s.Precision(), s.Recall(), s.F1()}
				}
				return render.NewJSONRenderer(ui.Out).Render(views)
			}

			for _, s := range scores {
				fmt.Fprintf(ui.Out, "%s\n", s.Feature)
				fmt.Fprintf(ui.Out, "    tp %d  fp %d  fn %d  tn %d\n", s.TP, s.FP, s.FN, s.TN)
				fmt.Fprintf(ui.Out, "    precision %.4f  recall %.4f  f1 %.4f\n", s.Precision(), s.Recall(), s.F1())
			}
			return nil
		},
	}
}

func aggregate(c *cli.Context) (*stat.Handler, error) {
	if c.NArg() != 1 {
		return nil, fmt.Errorf("usage: pairfeat %s %s", c.Command.Name, c.Command.ArgsUsage)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	h := stat.NewHandler()
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		h.Aggregate(strings.Fields(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	return h, nil
}
