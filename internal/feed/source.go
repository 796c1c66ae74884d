package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/agenthands/projectsearch/internal/core/model"
	"github.com/agenthands/projectsearch/internal/driver"
)

// Source yields raw rows from somewhere: a URL, a file, a graph store.
type Source interface {
	Fetch(ctx context.Context) ([]model.RawRow, error)
	String() string
}

// Load fetches rows and rejects a source that yields none.
func Load(ctx context.Context, src Source) ([]model.RawRow, error) {
	rows, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &EmptyDataError{Source: src.String()}
	}
	return rows, nil
}

type SourceOptions struct {
	Delimiter  rune
	SheetsOnly bool
	Client     *http.Client
	Graph      driver.GraphDriver
	GraphQuery string
}

// NewSource picks a source implementation from the reference's scheme.
// http(s) URLs are fetched, bolt/neo4j URIs are queried through opts.Graph,
// anything else is read as a local file.
func NewSource(ref string, opts SourceOptions) (Source, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("no source configured")
	}

	u, err := url.Parse(ref)
	scheme := ""
	if err == nil {
		scheme = strings.ToLower(u.Scheme)
	}

	switch {
	case scheme == "http" || scheme == "https":
		return &HTTPSource{
			URL:        ref,
			Client:     opts.Client,
			Delimiter:  opts.Delimiter,
			SheetsOnly: opts.SheetsOnly,
		}, nil
	case slices.Contains(graphSchemes, scheme):
		if opts.Graph == nil {
			return nil, fmt.Errorf("graph source %s requires a graph driver", ref)
		}
		query := opts.GraphQuery
		if query == "" {
			query = driver.ProjectFeedQuery
		}
		return &GraphSource{Name: ref, Driver: opts.Graph, Query: query}, nil
	default:
		return &FileSource{Path: ref, Delimiter: opts.Delimiter}, nil
	}
}

var graphSchemes = []string{"bolt", "bolt+s", "bolt+ssc", "neo4j", "neo4j+s", "neo4j+ssc"}

// IsGraphRef reports whether ref names a bolt/neo4j graph store.
func IsGraphRef(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	return err == nil && slices.Contains(graphSchemes, strings.ToLower(u.Scheme))
}

type HTTPSource struct {
	URL        string
	Client     *http.Client
	Delimiter  rune
	SheetsOnly bool
}

func (s *HTTPSource) String() string { return s.URL }

func (s *HTTPSource) Fetch(ctx context.Context) ([]model.RawRow, error) {
	if s.SheetsOnly && !strings.Contains(s.URL, "docs.google.com/spreadsheets") {
		return nil, &LoadError{Source: s.URL, Err: ErrSourceNotAllowed}
	}

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &LoadError{Source: s.URL, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &LoadError{Source: s.URL, Err: fmt.Errorf("network error: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{
			Source: s.URL,
			Err:    fmt.Errorf("HTTP %d: the sheet may not be publicly accessible or the URL is incorrect", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Source: s.URL, Err: fmt.Errorf("failed to read response data: %w", err)}
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil, &EmptyDataError{Source: s.URL}
	}

	return Parse(string(body), s.Delimiter)
}

type FileSource struct {
	Path      string
	Delimiter rune
}

func (s *FileSource) String() string { return s.Path }

func (s *FileSource) Fetch(ctx context.Context) ([]model.RawRow, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &LoadError{Source: s.Path, Err: err}
	}

	delim := s.Delimiter
	if delim == 0 && strings.EqualFold(filepath.Ext(s.Path), ".tsv") {
		delim = '\t'
	}
	return Parse(string(data), delim)
}

// GraphSource reads rows from a Cypher query returning a `props` map per row.
type GraphSource struct {
	Name   string
	Driver driver.GraphDriver
	Query  string
	Params map[string]interface{}
}

func (s *GraphSource) String() string { return s.Name }

func (s *GraphSource) Fetch(ctx context.Context) ([]model.RawRow, error) {
	result, err := s.Driver.ExecuteQuery(ctx, s.Query, s.Params)
	if err != nil {
		return nil, &LoadError{Source: s.Name, Err: err}
	}

	rows := make([]model.RawRow, 0, len(result.Records))
	for _, record := range result.Records {
		raw, ok := record.Get("props")
		if !ok {
			continue
		}
		props, ok := raw.(map[string]interface{})
		if !ok {
			return nil, &ParseError{Err: fmt.Errorf("expected property map, got %T", raw)}
		}

		row := make(model.RawRow, len(props))
		for k, v := range props {
			row[k] = cleanCell(stringify(v))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []interface{}:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}
