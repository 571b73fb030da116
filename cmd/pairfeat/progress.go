package main

import (
	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"
)

// newProgress shows a bar of total steps on ui.Err. It returns the tick
// and the stop functions; both do nothing with --quiet.
func newProgress(c *cli.Context, ui UI, total int, name string) (func(), func()) {
	if c.Bool("quiet") || total == 0 {
		return func() {}, func() {}
	}

	p := uiprogress.New()
	p.SetOut(ui.Err)
	bar := p.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return name
	})

	p.Start()
	return func() { bar.Incr() }, p.Stop
}
