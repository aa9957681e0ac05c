package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/mrpool/internal/workload"
	"github.com/utkarsh5026/mrpool/pool"
)

// IndexResult is the inverted index of a set of documents.
type IndexResult struct {
	Documents []string     `json:"documents"`
	Words     int          `json:"words"`
	Postings  []IndexEntry `json:"postings"`
}

// IndexEntry is one word of the index with the documents containing it.
type IndexEntry struct {
	Word      string   `json:"word"`
	Documents []string `json:"documents"`
}

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "index <path>...",
		Short: "Build an inverted index of text files",
		Long: `Build an inverted index mapping every word to the files it occurs in.

Directories are walked recursively. Words are Unicode-normalized and case
folded, so "Straße" and "STRASSE" index as the same word.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(rootOpts, cmd, args, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many words (0 for all)")

	return cmd
}

func runIndex(opts *RootOptions, cmd *cobra.Command, paths []string, limit int) error {
	out := newFormatter(opts, cmd)

	w := &workflow[workload.InvertedIndex]{
		name:   "index",
		opts:   opts,
		out:    out,
		mapFn:  pool.MapOf(workload.IndexDocument),
		reduce: pool.ReduceOf(workload.Merge),
	}
	docs, idx, err := w.run(cmd.Context(), paths)
	if err != nil {
		return err
	}

	return out.Success(newIndexResult(docs, idx, limit))
}

func newIndexResult(docs []workload.Document, idx workload.InvertedIndex, limit int) *IndexResult {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}

	postings := idx.Postings()
	if limit > 0 && limit < len(postings) {
		postings = postings[:limit]
	}

	res := &IndexResult{
		Documents: names,
		Words:     len(idx),
		Postings:  make([]IndexEntry, len(postings)),
	}
	for i, p := range postings {
		entry := IndexEntry{Word: p.Word, Documents: make([]string, len(p.Docs))}
		for j, id := range p.Docs {
			entry.Documents[j] = names[id]
		}
		res.Postings[i] = entry
	}
	return res
}

// RenderText prints the index as a table.
func (r *IndexResult) RenderText(w io.Writer) error {
	_, _ = textBold.Fprintf(w, "Indexed %d document(s), %d distinct word(s)\n", len(r.Documents), r.Words)

	table := tablewriter.NewWriter(w)
	table.Header("Word", "Docs", "Documents")
	for _, e := range r.Postings {
		_ = table.Append(e.Word, fmt.Sprint(len(e.Documents)), strings.Join(e.Documents, ", "))
	}
	return table.Render()
}
