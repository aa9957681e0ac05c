package pool

import (
	"io"
	"iter"
	"os"
	"slices"

	"github.com/schollz/progressbar/v3"
)

// Identity is the ProgressFunc that reports nothing.
func Identity[T any](stages [][]T) iter.Seq[[]T] {
	return slices.Values(stages)
}

// ProgressBar returns a ProgressFunc that drives bar: the bar's maximum is
// set to the number of stages and it advances once each stage is folded in.
func ProgressBar[T any](bar *progressbar.ProgressBar) ProgressFunc[T] {
	return func(stages [][]T) iter.Seq[[]T] {
		bar.ChangeMax(len(stages))
		return func(yield func([]T) bool) {
			for _, stage := range stages {
				if !yield(stage) {
					return
				}
				_ = bar.Add(1)
			}
		}
	}
}

// NewStageBar creates a progress bar for staged calls, writing to w
// (os.Stderr if nil). Its maximum is set by ProgressBar once the stage count
// is known.
func NewStageBar(description string, w io.Writer) *progressbar.ProgressBar {
	if w == nil {
		w = os.Stderr
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionClearOnFinish(),
	)
}
