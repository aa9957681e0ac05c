package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/mrpool/internal/workload"
	"github.com/utkarsh5026/mrpool/pool"
)

// CountResult is the word count of a set of documents.
type CountResult struct {
	Documents     int                  `json:"documents"`
	DistinctWords int                  `json:"distinct_words"`
	TotalWords    int                  `json:"total_words"`
	Top           []workload.WordCount `json:"top"`
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "count <path>...",
		Short: "Count word frequencies across text files",
		Long: `Count how often every word occurs across text files and list the most
frequent ones.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(rootOpts, cmd, args, top)
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 10, "number of words to list (0 for all)")

	return cmd
}

func runCount(opts *RootOptions, cmd *cobra.Command, paths []string, top int) error {
	out := newFormatter(opts, cmd)

	w := &workflow[workload.Counts]{
		name:   "count",
		opts:   opts,
		out:    out,
		mapFn:  pool.MapOf(workload.CountWords),
		reduce: pool.ReduceOf(workload.MergeCounts),
	}
	docs, counts, err := w.run(cmd.Context(), paths)
	if err != nil {
		return err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	return out.Success(&CountResult{
		Documents:     len(docs),
		DistinctWords: len(counts),
		TotalWords:    total,
		Top:           counts.Top(top),
	})
}

// RenderText prints the ranked words as a table.
func (r *CountResult) RenderText(w io.Writer) error {
	_, _ = textBold.Fprintf(w, "Counted %d word(s), %d distinct, in %d document(s)\n",
		r.TotalWords, r.DistinctWords, r.Documents)

	table := tablewriter.NewWriter(w)
	table.Header("Rank", "Word", "Count")
	for i, wc := range r.Top {
		_ = table.Append(fmt.Sprint(i+1), wc.Word, fmt.Sprint(wc.Count))
	}
	return table.Render()
}
