package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nakshatralabs/jyotir/pkg/manifest"
	"github.com/nakshatralabs/jyotir/pkg/pipeline"
)

// vargottamaCommand creates the "vargottama" command: evaluate per-body
// vargottama status by comparing the rashi and navamsha charts.
func (c *CLI) vargottamaCommand() *cobra.Command {
	var (
		noCache  bool
		ephemURL string
	)

	cmd := &cobra.Command{
		Use:   "vargottama <request-file>",
		Short: "Evaluate vargottama status (D1 vs D9)",
		Long: `Evaluate which bodies occupy the same sign in the rashi (D1) and
navamsha (D9) charts. The shadow nodes Rahu and Ketu are reported as
inapplicable rather than yes or no.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			m, err := manifest.Load(args[0])
			if err != nil {
				return formatError(err)
			}
			remote, err := newProvider(ctx, ephemURL, noCache)
			if err != nil {
				return formatError(err)
			}
			provider, request, err := m.Provider(remote)
			if err != nil {
				return formatError(err)
			}

			runner := pipeline.NewRunner(provider, logger)
			result, err := runner.Run(ctx, pipeline.Options{
				Request:   request,
				Divisions: []int{1, 9},
			})
			if err != nil {
				return formatError(err)
			}

			printNewline()
			fmt.Println(renderVargottama(result.Vargottama))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the ephemeris response cache")
	cmd.Flags().StringVar(&ephemURL, "ephem-url", "", "ephemeris service URL (default $"+envEphemURL+")")

	return cmd
}
