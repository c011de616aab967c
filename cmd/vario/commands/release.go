package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/vario/internal/app"
	"go.trai.ch/zerr"
)

func (c *CLI) newReleaseCmd() *cobra.Command {
	var opts app.ReleaseOptions

	cmd := &cobra.Command{
		Use:   "release [targets...]",
		Short: "Build the targets of vario.yaml concurrently",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Jobs < 0 {
				return zerr.With(zerr.New("jobs must not be negative"), "jobs", opts.Jobs)
			}
			opts.Targets = args
			_, err := c.app.Release(cmd.Context(), opts)
			return err
		},
	}
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "",
		"Config file (default: vario.yaml found from the working directory upwards)")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Number of concurrent builds (default: config, then CPU count)")
	return cmd
}
