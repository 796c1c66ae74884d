package core

import (
	"context"
	"fmt"
	"net/http"

	"github.com/agenthands/projectsearch/internal/config"
	"github.com/agenthands/projectsearch/internal/core/resolve"
	"github.com/agenthands/projectsearch/internal/core/semantic"
	"github.com/agenthands/projectsearch/internal/driver"
	"github.com/agenthands/projectsearch/internal/feed"
)

// NewFinderFromConfig wires sources, resolver and semantic search from cfg.
// graph may be nil when no bolt/neo4j sources are configured. Nothing is
// fetched; call Load and InitResolver afterwards.
func NewFinderFromConfig(ctx context.Context, cfg *config.Config, graph driver.GraphDriver) (*Finder, error) {
	opts := feed.SourceOptions{
		Delimiter:  cfg.Feed.DelimiterRune(),
		SheetsOnly: cfg.Feed.SheetsOnly,
		Client:     &http.Client{Timeout: cfg.Feed.FetchTimeout()},
		Graph:      graph,
	}

	var src feed.Source
	if cfg.Feed.Source != "" {
		s, err := feed.NewSource(cfg.Feed.Source, opts)
		if err != nil {
			return nil, fmt.Errorf("feed source: %w", err)
		}
		src = s
	}

	var res *resolve.Resolver
	if cfg.Resolver.Source != "" {
		refOpts := opts
		refOpts.SheetsOnly = false
		refOpts.GraphQuery = driver.ReferenceListQuery
		s, err := feed.NewSource(cfg.Resolver.Source, refOpts)
		if err != nil {
			return nil, fmt.Errorf("resolver source: %w", err)
		}
		res = resolve.New(s, cfg.Resolver.BaseURL)
	}

	svc, err := semantic.NewServiceFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return NewFinder(Options{
		Feed:      src,
		Resolver:  res,
		Semantic:  svc,
		Threshold: cfg.Search.Threshold,
	}), nil
}

// OpenGraph connects to the graph store when the feed or the resolver reads
// from one, and returns nil otherwise. [memgraph] uri wins over the source
// reference itself.
func OpenGraph(ctx context.Context, cfg *config.Config) (driver.GraphDriver, error) {
	uri := cfg.Memgraph.URI
	switch {
	case feed.IsGraphRef(cfg.Feed.Source):
		if uri == "" {
			uri = cfg.Feed.Source
		}
	case feed.IsGraphRef(cfg.Resolver.Source):
		if uri == "" {
			uri = cfg.Resolver.Source
		}
	default:
		return nil, nil
	}

	d, err := driver.NewMemgraphDriver(ctx, uri, cfg.Memgraph.User, cfg.Memgraph.Password)
	if err != nil {
		return nil, err
	}
	return d, nil
}
