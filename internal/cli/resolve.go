package cli

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/projectsearch/internal/core/model"
)

func newResolveCmd(a *app) *cobra.Command {
	var fallback string

	cmd := &cobra.Command{
		Use:   "resolve <title>",
		Short: "Print the list URL for a project title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.finder.InitResolver(cmd.Context()); err != nil {
				log.Printf("Warning: %v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.finder.Resolve(strings.Join(args, " "), fallback))
			return nil
		},
	}

	cmd.Flags().StringVar(&fallback, "fallback", model.URLPlaceholder, "URL printed when the title is unknown")
	return cmd
}
