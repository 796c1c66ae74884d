// Package cli implements the projsearch command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/projectsearch/internal/config"
	"github.com/agenthands/projectsearch/internal/core"
	"github.com/agenthands/projectsearch/internal/driver"
	"github.com/agenthands/projectsearch/internal/render"
)

// app carries the global flags and everything built from them.
type app struct {
	configPath  string
	feedRef     string
	resolverRef string
	output      string
	jsonOutput  bool

	cfg      *config.Config
	graph    driver.GraphDriver
	finder   *core.Finder
	renderer render.Renderer
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "projsearch",
		Short: "Search a project feed by text, typo-tolerant match or natural language",
		Long: `projsearch loads a tabular project feed (CSV/TSV file, published sheet URL
or graph store) and searches it by exact substring, fuzzy match, or by asking
an LLM provider. Results are printed as cards with their list links resolved.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			var errs []error
			if a.finder != nil {
				errs = append(errs, a.finder.Close())
			}
			if a.graph != nil {
				errs = append(errs, a.graph.Close(cmd.Context()))
			}
			return errors.Join(errs...)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $CONFIG_PATH or config.toml)")
	flags.StringVar(&a.feedRef, "feed", "", "project feed: file path, http(s) URL or bolt:// URI")
	flags.StringVar(&a.resolverRef, "resolver", "", "reference list dataset used to resolve title links")
	flags.StringVarP(&a.output, "output", "o", "cards", "output format: cards, table or json")
	flags.BoolVar(&a.jsonOutput, "json", false, "shorthand for --output json")

	root.AddCommand(
		newSearchCmd(a),
		newSuggestCmd(a),
		newResolveCmd(a),
		newAskCmd(a),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

func (a *app) setup(ctx context.Context) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	if a.jsonOutput {
		a.output = "json"
	}
	if a.renderer, err = render.New(a.output); err != nil {
		return err
	}

	if a.graph, err = core.OpenGraph(ctx, cfg); err != nil {
		return err
	}
	a.finder, err = core.NewFinderFromConfig(ctx, cfg, a.graph)
	return err
}

func (a *app) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case a.configPath != "":
		cfg, err = config.Load(a.configPath)
	case os.Getenv("CONFIG_PATH") != "":
		cfg, err = config.Load(os.Getenv("CONFIG_PATH"))
	default:
		cfg, err = config.LoadOrDefault(config.DefaultPath)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if a.feedRef != "" {
		cfg.Feed.Source = a.feedRef
	}
	if a.resolverRef != "" {
		cfg.Resolver.Source = a.resolverRef
	}
	return cfg, nil
}

// load fetches the feed and, when configured, the resolver's reference list.
// A resolver failure only costs resolved links.
func (a *app) load(ctx context.Context) error {
	if _, err := a.finder.Load(ctx); err != nil {
		return err
	}
	if a.cfg.Resolver.Source != "" {
		if err := a.finder.InitResolver(ctx); err != nil {
			log.Printf("Warning: links will not be resolved: %v", err)
		}
	}
	return nil
}
