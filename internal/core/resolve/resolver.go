// Package resolve maps project titles to canonical list URLs.
//
// The lookup table is built once from a reference dataset of title/slug rows and
// is replaced wholesale on every Init. Until a table is ready, or when a title is
// unknown, Resolve hands back the caller's fallback URL.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/agenthands/projectsearch/internal/core/model"
	"github.com/agenthands/projectsearch/internal/feed"
)

type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Header aliases accepted in the reference dataset.
var (
	TitleColumns = []string{"Title", "Name", "List Title", "List Name", "Project"}
	SlugColumns  = []string{"Slug", "List Slug", "List", "Key", "ID"}
)

var errNoSource = errors.New("no reference dataset configured")

type Resolver struct {
	source  feed.Source
	baseURL string

	mu    sync.RWMutex
	state State
	table model.LookupTable
}

// New creates an uninitialized resolver. baseURL is the origin-relative path
// every resolved URL starts with, e.g. "/lists/".
func New(source feed.Source, baseURL string) *Resolver {
	return &Resolver{
		source:  source,
		baseURL: baseURL,
		table:   model.LookupTable{},
	}
}

// Init fetches the reference dataset and swaps in a freshly built table.
// On failure the table is emptied and the resolver stays usable in fallback mode.
func (r *Resolver) Init(ctx context.Context) error {
	r.mu.Lock()
	r.state = StateLoading
	r.mu.Unlock()

	var (
		rows []model.RawRow
		err  = errNoSource
	)
	if r.source != nil {
		rows, err = feed.Load(ctx, r.source)
	}
	if err != nil {
		r.mu.Lock()
		r.table = model.LookupTable{}
		r.state = StateFailed
		r.mu.Unlock()

		log.Printf("Title resolver failed to initialize: %v", err)
		return fmt.Errorf("failed to initialize title resolver: %w", err)
	}

	table := BuildTable(rows)

	r.mu.Lock()
	r.table = table
	r.state = StateReady
	r.mu.Unlock()

	log.Printf("Title resolver ready: %d lookup keys from %s", len(table), r.source)
	return nil
}

// Resolve returns the canonical URL for title, or fallbackURL when the resolver
// is not ready, the title is blank, or no case variant of it is known.
func (r *Resolver) Resolve(title, fallbackURL string) string {
	r.mu.RLock()
	state, table := r.state, r.table
	r.mu.RUnlock()

	if state != StateReady {
		log.Printf("Warning: title resolver is %s; using fallback URL for %q", state, title)
		return fallbackURL
	}

	key := strings.TrimSpace(title)
	if key == "" {
		return fallbackURL
	}

	slug, ok := table[key]
	if !ok {
		slug, ok = table[strings.ToLower(key)]
	}
	if !ok {
		return fallbackURL
	}
	return r.URLFor(slug)
}

func (r *Resolver) URLFor(slug string) string {
	return r.baseURL + "#list=" + slug + "&display=table"
}

func (r *Resolver) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Len reports the number of lookup keys (two per usable reference row).
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.table)
}

// BuildTable keys each row's slug by its trimmed title and by the lowercased
// title. Rows without both a title and a slug are skipped.
func BuildTable(rows []model.RawRow) model.LookupTable {
	table := make(model.LookupTable, len(rows)*2)
	for _, row := range rows {
		title := feed.LookupColumn(row, TitleColumns)
		slug := feed.LookupColumn(row, SlugColumns)
		if title == "" || slug == "" {
			continue
		}
		table[title] = slug
		table[strings.ToLower(title)] = slug
	}
	return table
}
