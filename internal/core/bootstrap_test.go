package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/projectsearch/internal/config"
)

func TestNewFinderFromConfig_Files(t *testing.T) {
	dir := t.TempDir()
	feedPath := filepath.Join(dir, "projects.tsv")
	refPath := filepath.Join(dir, "lists.csv")
	require.NoError(t, os.WriteFile(feedPath, []byte("Name\tSummary\nTide Gauge\tSea level sensors\n"), 0o644))
	require.NoError(t, os.WriteFile(refPath, []byte("List Name,List Slug\nTide Gauge,tide-gauge\n"), 0o644))

	cfg := config.Default()
	cfg.Feed.Source = feedPath
	cfg.Resolver.Source = refPath
	cfg.Resolver.BaseURL = "/lists/"
	cfg.Search.Threshold = 0.2

	ctx := context.Background()
	f, err := NewFinderFromConfig(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.2, f.Threshold())

	n, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, f.InitResolver(ctx))

	cards := f.Cards(f.Search("tide", false))
	require.Len(t, cards, 1)
	assert.Equal(t, "/lists/#list=tide-gauge&display=table", cards[0].URL)
}

func TestNewFinderFromConfig_GraphWithoutDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Feed.Source = "bolt://localhost:7687"

	_, err := NewFinderFromConfig(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "requires a graph driver")
}

func TestNewFinderFromConfig_NoSources(t *testing.T) {
	f, err := NewFinderFromConfig(context.Background(), config.Default(), nil)
	require.NoError(t, err)

	_, err = f.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoFeed)
	assert.ErrorIs(t, f.InitResolver(context.Background()), ErrNoResolver)
}

func TestOpenGraph_NotNeeded(t *testing.T) {
	cfg := config.Default()
	cfg.Feed.Source = "projects.csv"
	cfg.Memgraph.URI = "bolt://localhost:7687"

	g, err := OpenGraph(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, g)
}
