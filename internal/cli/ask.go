package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/projectsearch/internal/core/model"
	"github.com/agenthands/projectsearch/internal/render"
)

func newAskCmd(a *app) *cobra.Command {
	var (
		provider string
		filters  model.SearchFilters
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask an LLM provider which projects match a natural-language query",
		Example: `  projsearch ask "projects about renewable energy"
  projsearch ask "ocean monitoring" --provider secondary --team Maritime`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}

			resp, cards, err := a.finder.Ask(cmd.Context(), strings.Join(args, " "), provider, filters)
			if err != nil {
				return err
			}
			if _, isJSON := a.renderer.(render.JSONRenderer); !isJSON && resp.SearchInterpretation != "" {
				cmd.PrintErrln(render.Muted.Render("Interpreted as: " + resp.SearchInterpretation))
			}
			return a.renderer.Render(cmd.OutOrStdout(), cards)
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "primary", "primary, secondary, or a configured provider name")
	cmd.Flags().IntVar(&filters.MaxResults, "max-results", 0, "projects sent to the provider (default from config)")
	cmd.Flags().StringSliceVar(&filters.Teams, "team", nil, "only projects whose team contains this value")
	cmd.Flags().StringSliceVar(&filters.Status, "status", nil, "only projects with this status")
	return cmd
}
