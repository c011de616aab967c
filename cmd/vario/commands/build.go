package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/zerr"
)

// buildFlags are shared by build and watch.
type buildFlags struct {
	source   string
	output   string
	excludes []string
	ignores  []string
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "Entry point of the bundle")
	cmd.Flags().StringVarP(&f.output, "out", "o", "", "Artifact path; the source map is written next to it")
	cmd.Flags().StringArrayVar(&f.excludes, "exclude", nil,
		"Module path to replace with an empty body (full-dev, full-min)")
	cmd.Flags().StringArrayVar(&f.ignores, "ignore", nil,
		"Module to drop from the bundle, resolved from the entry directory (bridge, bridge-min)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("out")
}

// request validates the flags against the variant's module list kind.
func (f *buildFlags) request(name string) (domain.BuildRequest, error) {
	variant, err := domain.LookupVariant(domain.VariantName(name))
	if err != nil {
		return domain.BuildRequest{}, err
	}

	req := domain.BuildRequest{
		Variant: variant.Name,
		Source:  f.source,
		Output:  f.output,
	}

	switch variant.List {
	case domain.ListExclude:
		if len(f.ignores) > 0 {
			return req, unsupported(variant.Name, "--ignore")
		}
		req.Modules = f.excludes
	case domain.ListIgnore:
		if len(f.excludes) > 0 {
			return req, unsupported(variant.Name, "--exclude")
		}
		req.Modules = f.ignores
	case domain.ListNone:
		if len(f.excludes) > 0 || len(f.ignores) > 0 {
			return req, unsupported(variant.Name, "module lists")
		}
	}
	return req, nil
}

func unsupported(variant domain.VariantName, what string) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidTarget, what+" not supported by "+string(variant)), "variant", string(variant))
}

func variantArg() cobra.PositionalArgs {
	return cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)
}

func variantUsage() string {
	return strings.Join(domain.VariantNames(), "|")
}

func (c *CLI) newBuildCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:       "build <" + variantUsage() + ">",
		Short:     "Build one variant of the bundle",
		Args:      variantArg(),
		ValidArgs: domain.VariantNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args[0])
			if err != nil {
				return err
			}
			_, err = c.app.Build(cmd.Context(), req)
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:       "watch <" + variantUsage() + ">",
		Short:     "Rebuild one variant whenever its sources change",
		Args:      variantArg(),
		ValidArgs: domain.VariantNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(args[0])
			if err != nil {
				return err
			}
			return c.app.Watch(cmd.Context(), req)
		},
	}
	flags.register(cmd)
	return cmd
}
