package cli

import (
	"io"
	"runtime"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/mrpool/pool"
)

// Info describes the pool the current flags would build.
type Info struct {
	AvailableCores int    `json:"available_cores"`
	Workers        int    `json:"workers"`
	Inline         bool   `json:"inline"`
	Stages         int    `json:"stages"`
	GOOS           string `json:"goos"`
	GOARCH         string `json:"goarch"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the resolved pool configuration",
		Long: `Show how many cores are available to the process and how the global
flags resolve into a pool: worker count, inline mode and stages.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, cmd)
		},
	}
}

func runInfo(opts *RootOptions, cmd *cobra.Command) error {
	out := newFormatter(opts, cmd)

	var info *Info
	err := pool.WithPool(func(p *pool.Pool[struct{}, struct{}]) error {
		info = &Info{
			AvailableCores: p.AvailableCores(),
			Workers:        p.WorkerCount(),
			Inline:         p.Inline(),
			Stages:         opts.stages(),
			GOOS:           runtime.GOOS,
			GOARCH:         runtime.GOARCH,
		}
		return nil
	}, pool.WithWorkerCount(opts.Workers))
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeConfig, "invalid pool configuration", err)
	}

	return out.Success(info)
}

// RenderText prints the configuration as a two-column table.
func (i *Info) RenderText(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("Setting", "Value")
	_ = table.Append("available cores", strconv.Itoa(i.AvailableCores))
	_ = table.Append("workers", strconv.Itoa(i.Workers))
	_ = table.Append("inline", strconv.FormatBool(i.Inline))
	_ = table.Append("stages", strconv.Itoa(i.Stages))
	_ = table.Append("platform", i.GOOS+"/"+i.GOARCH)
	return table.Render()
}
