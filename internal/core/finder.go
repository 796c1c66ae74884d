package core

import (
	"context"
	"errors"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/agenthands/projectsearch/internal/core/match"
	"github.com/agenthands/projectsearch/internal/core/model"
	"github.com/agenthands/projectsearch/internal/core/resolve"
	"github.com/agenthands/projectsearch/internal/core/semantic"
	"github.com/agenthands/projectsearch/internal/feed"
	"github.com/agenthands/projectsearch/internal/render"
)

var (
	ErrNoFeed     = errors.New("no project feed configured")
	ErrNoSemantic = errors.New("semantic search is not configured")
	ErrNoResolver = errors.New("no resolver configured")
)

type Options struct {
	Feed      feed.Source
	Aliases   *feed.ColumnAliases
	Resolver  *resolve.Resolver
	Semantic  *semantic.Service
	Threshold float64
}

// Finder owns the loaded record set and its index, and wires search,
// suggestion, link resolution and semantic search over them.
type Finder struct {
	source   feed.Source
	aliases  feed.ColumnAliases
	resolver *resolve.Resolver
	semantic *semantic.Service

	loadMu sync.Mutex

	mu       sync.RWMutex
	records  []model.Record
	index    *match.Index
	loadedAt time.Time
}

func NewFinder(opts Options) *Finder {
	aliases := feed.DefaultColumnAliases()
	if opts.Aliases != nil {
		aliases = *opts.Aliases
	}
	return &Finder{
		source:   opts.Feed,
		aliases:  aliases,
		resolver: opts.Resolver,
		semantic: opts.Semantic,
		index:    match.Build(nil, opts.Threshold),
	}
}

// Load fetches and normalizes the feed, then swaps in the new records and a
// fresh index. Loads are serialized; on failure the previous records stay.
func (f *Finder) Load(ctx context.Context) (int, error) {
	if f.source == nil {
		return 0, ErrNoFeed
	}

	f.loadMu.Lock()
	defer f.loadMu.Unlock()

	rows, err := feed.Load(ctx, f.source)
	if err != nil {
		log.Printf("Failed to load feed %s: %v", f.source, err)
		return 0, err
	}
	records := feed.NormalizeWithAliases(rows, f.aliases)

	f.Replace(records)
	if f.semantic != nil {
		f.semantic.Purge()
	}
	log.Printf("Loaded %d projects from %s", len(records), f.source)
	return len(records), nil
}

// Replace installs records directly, keeping the current threshold.
func (f *Finder) Replace(records []model.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = records
	f.index = match.Build(records, f.index.Threshold())
	f.loadedAt = time.Now().UTC()
}

func (f *Finder) snapshot() ([]model.Record, *match.Index) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.records, f.index
}

// Records returns a copy of the loaded record set.
func (f *Finder) Records() []model.Record {
	records, _ := f.snapshot()
	return slices.Clone(records)
}

func (f *Finder) Len() int {
	records, _ := f.snapshot()
	return len(records)
}

func (f *Finder) LoadedAt() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loadedAt
}

func (f *Finder) Search(query string, fuzzy bool) []model.MatchResult {
	records, idx := f.snapshot()
	return match.Search(query, records, idx, fuzzy)
}

// SetThreshold retunes fuzzy tolerance and returns the clamped value in effect.
// The write lock keeps a concurrent Replace from building its index with the
// old value.
func (f *Finder) SetThreshold(t float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.index.SetThreshold(t)
	return f.index.Threshold()
}

func (f *Finder) Threshold() float64 {
	_, idx := f.snapshot()
	return idx.Threshold()
}

func (f *Finder) Suggest(prefix string, limit int) []string {
	records, _ := f.snapshot()
	return match.Suggest(prefix, records, limit)
}

// InitResolver (re)builds the title lookup table.
func (f *Finder) InitResolver(ctx context.Context) error {
	if f.resolver == nil {
		return ErrNoResolver
	}
	return f.resolver.Init(ctx)
}

func (f *Finder) ResolverState() resolve.State {
	if f.resolver == nil {
		return resolve.StateUninitialized
	}
	return f.resolver.State()
}

// Resolve maps a title to its list URL, falling back when no resolver is set
// or the title is unknown.
func (f *Finder) Resolve(title, fallback string) string {
	if f.resolver == nil {
		return fallback
	}
	return f.resolver.Resolve(title, fallback)
}

// Cards turns match results into display cards with resolved links.
func (f *Finder) Cards(results []model.MatchResult) []render.Card {
	cards := make([]render.Card, 0, len(results))
	for _, r := range results {
		if r.Record == nil {
			continue
		}
		rec := r.Record
		cards = append(cards, render.Card{
			Title:       rec.Title,
			Description: rec.Description,
			URL:         f.Resolve(rec.Title, rec.URL),
			Team:        rec.Team,
			Status:      rec.Status,
			Tags:        rec.Tags,
			Score:       r.Score,
		})
	}
	return cards
}

// Ask runs a semantic search over the loaded records.
func (f *Finder) Ask(ctx context.Context, query, provider string, filters model.SearchFilters) (*model.SemanticResponse, []render.Card, error) {
	return f.AskRequest(ctx, semantic.Request{
		Query:    query,
		Provider: provider,
		Filters:  filters,
	})
}

// AskRequest runs a semantic search; a request without projects searches the
// loaded records.
func (f *Finder) AskRequest(ctx context.Context, req semantic.Request) (*model.SemanticResponse, []render.Card, error) {
	if f.semantic == nil {
		return nil, nil, ErrNoSemantic
	}

	if len(req.Projects) == 0 {
		records, _ := f.snapshot()
		req.Projects = make([]model.ProjectData, len(records))
		for i, rec := range records {
			req.Projects[i] = model.ProjectFromRecord(rec)
		}
	}

	resp, err := f.semantic.Search(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	return resp, f.SemanticCards(resp.Matches), nil
}

// Close releases provider clients held by the semantic service.
func (f *Finder) Close() error {
	if f.semantic == nil {
		return nil
	}
	return f.semantic.Close()
}

// SemanticCards renders provider matches, resolving each title to a list URL.
func (f *Finder) SemanticCards(matches []model.SemanticMatch) []render.Card {
	cards := make([]render.Card, 0, len(matches))
	for _, m := range matches {
		fallback := model.URLPlaceholder
		if m.URL != nil && *m.URL != "" {
			fallback = *m.URL
		}
		card := render.Card{
			Title:       m.Title,
			Description: m.Description,
			URL:         f.Resolve(m.Title, fallback),
			Relevance:   m.RelevanceScore,
		}
		if m.Team != nil {
			card.Team = *m.Team
		}
		if m.Status != nil {
			card.Status = *m.Status
		}
		if m.MatchReason != nil {
			card.Reason = *m.MatchReason
		}
		cards = append(cards, card)
	}
	return cards
}
