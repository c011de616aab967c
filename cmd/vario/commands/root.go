// Package commands implements the CLI commands for the vario bundler.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/vario/internal/app"
	"go.trai.ch/vario/internal/build"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
)

// CLI represents the command line interface for vario.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command

	jsonLogs    bool
	metricsFile string
	flagPrefix  string
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, req domain.BuildRequest) (domain.BuildResult, error)
	Release(ctx context.Context, opts app.ReleaseOptions) ([]domain.BuildResult, error)
	Watch(ctx context.Context, req domain.BuildRequest) error
	WriteMetrics(path string) error
	SetFlagPrefix(prefix string) error
}

// New creates a new CLI instance with the given app.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "vario",
		Short:         "Build the variants of a JavaScript game bundle",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().BoolVar(&c.jsonLogs, "json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "",
		"Write Prometheus build metrics to this file when the command finishes")
	rootCmd.PersistentFlags().StringVar(&c.flagPrefix, "flag-prefix", "",
		"Prefix of compile-time flag identifiers (default "+domain.DefaultFlagPrefix+")")
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		c.logger.SetJSON(c.jsonLogs)
		return c.app.SetFlagPrefix(c.flagPrefix)
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newReleaseCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context. Metrics are written
// even when the command fails.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	err := c.rootCmd.Execute()

	if c.metricsFile != "" {
		if mErr := c.app.WriteMetrics(c.metricsFile); mErr != nil {
			return errors.Join(err, mErr)
		}
	}
	return err
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
