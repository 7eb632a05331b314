package main

import (
	"time"

	"github.com/schollz/progressbar/v3"
)

type progress struct {
	bar *progressbar.ProgressBar
}

func newProgress(total int) *progress {
	theme := progressbar.Theme{
		Saucer:        "=",
		SaucerHead:    ">",
		SaucerPadding: " ",
		BarStart:      "[",
		BarEnd:        "]",
	}
	return &progress{bar: progressbar.NewOptions(total,
		progressbar.OptionSetTheme(theme),
		progressbar.OptionSetDescription("[GPX] converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(100*time.Millisecond),
	)}
}

func (p *progress) Inc()  { _ = p.bar.Add(1) }
func (p *progress) Done() { _ = p.bar.Finish() }
