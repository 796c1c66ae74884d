package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		exact     bool
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search project titles, descriptions and metadata",
		Example: `  projsearch search "dtaa pipline"
  projsearch search solar --exact
  projsearch search "harbour" --threshold 0.5 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				a.finder.SetThreshold(threshold)
			}

			fuzzy := a.cfg.Search.Fuzzy && !exact
			results := a.finder.Search(strings.Join(args, " "), fuzzy)
			return a.renderer.Render(cmd.OutOrStdout(), a.finder.Cards(results))
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "case-insensitive substring match on title and description")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "fuzzy tolerance from 0 (exact) to 1 (anything)")
	return cmd
}

func newSuggestCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Complete a partially typed project title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.finder.Load(cmd.Context()); err != nil {
				return err
			}
			for _, title := range a.finder.Suggest(strings.Join(args, " "), limit) {
				fmt.Fprintln(cmd.OutOrStdout(), title)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 8, "maximum suggestions")
	return cmd
}
