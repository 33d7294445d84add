package cli

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nakshatralabs/jyotir/pkg/manifest"
	"github.com/nakshatralabs/jyotir/pkg/pipeline"

	apperrors "github.com/nakshatralabs/jyotir/pkg/errors"
)

// chartCommand creates the "chart" command: compute and print divisional
// charts from a request file.
func (c *CLI) chartCommand() *cobra.Command {
	var (
		divisions []int
		jsonOut   bool
		browse    bool
		noCache   bool
		ephemURL  string
	)

	cmd := &cobra.Command{
		Use:   "chart <request-file>",
		Short: "Compute divisional charts from a request file",
		Long: `Compute divisional charts from a TOML request file.

The request file names the chart and gives either a [moment] block (birth
time and place, resolved through the ephemeris service) or a [positions]
block with raw sidereal longitudes.

Divisions come from --division flags, then the request file, then default
to all sixteen supported harmonics.`,
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

			ds := divisions
			if len(ds) == 0 {
				ds = m.RequestedDivisions()
			}

			var spinner *Spinner
			if m.Moment != nil {
				spinner = newSpinner(ctx, "Resolving positions...")
				spinner.Start()
			}

			prog := newProgress(logger)
			runner := pipeline.NewRunner(provider, logger)
			result, err := runner.Run(ctx, pipeline.Options{
				Request:   request,
				Divisions: ds,
			})
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return formatError(err)
			}
			prog.done(fmt.Sprintf("Built %d charts for %s", len(result.Charts), m.Name))

			if jsonOut {
				return printJSON(result)
			}
			if browse {
				model := newChartBrowser(m.Name, result)
				_, err := tea.NewProgram(model).Run()
				return err
			}

			printNewline()
			for _, d := range ds {
				fmt.Println(renderChart(result.Charts[d]))
				printNewline()
			}
			if result.Vargottama != nil {
				fmt.Println(renderVargottama(result.Vargottama))
				printNewline()
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVarP(&divisions, "division", "d", nil, "harmonic to build (repeatable, e.g. -d 1 -d 9)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the full result as JSON")
	cmd.Flags().BoolVar(&browse, "browse", false, "page through the charts interactively")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the ephemeris response cache")
	cmd.Flags().StringVar(&ephemURL, "ephem-url", "", "ephemeris service URL (default $"+envEphemURL+")")

	return cmd
}

// printJSON writes the pipeline result to stdout as indented JSON.
func printJSON(result *pipeline.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		RequestID  string `json:"request_id"`
		Charts     any    `json:"charts"`
		Vargottama any    `json:"vargottama,omitempty"`
	}{
		RequestID:  result.RequestID,
		Charts:     result.Charts,
		Vargottama: result.Vargottama,
	})
}

// formatError converts structured errors to their user-facing message.
func formatError(err error) error {
	if code := apperrors.GetCode(err); code != "" {
		return fmt.Errorf("%s", apperrors.UserMessage(err))
	}
	return err
}
