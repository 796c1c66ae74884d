// Package semantic delegates natural-language project search to an LLM
// provider and turns its reply into a structured match list.
package semantic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/agenthands/projectsearch/internal/config"
	"github.com/agenthands/projectsearch/internal/core/model"
	"github.com/agenthands/projectsearch/internal/llm"
)

const (
	SlotPrimary   = "primary"
	SlotSecondary = "secondary"
)

type Request struct {
	Query    string              `json:"query"`
	Provider string              `json:"provider"`
	Filters  model.SearchFilters `json:"filters"`
	Projects []model.ProjectData `json:"projects,omitempty"`
}

// Backend is one configured provider slot.
type Backend struct {
	Name   string // provider name, e.g. "gemini"
	Client llm.LLMClient
}

type Options struct {
	Prompt     *Prompt
	MaxResults int
	CacheSize  int
	CacheTTL   time.Duration
}

type Service struct {
	backends   map[string]Backend
	prompt     *Prompt
	maxResults int
	cache      *expirable.LRU[string, *model.SemanticResponse]
}

func NewService(primary, secondary Backend, opts Options) *Service {
	if opts.Prompt == nil {
		opts.Prompt, _ = NewPrompt("")
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 128
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	return &Service{
		backends: map[string]Backend{
			SlotPrimary:   primary,
			SlotSecondary: secondary,
		},
		prompt:     opts.Prompt,
		maxResults: opts.MaxResults,
		cache:      expirable.NewLRU[string, *model.SemanticResponse](opts.CacheSize, nil, opts.CacheTTL),
	}
}

// NewServiceFromConfig builds provider clients for both slots. A slot whose
// client cannot be created is left empty and reported at request time.
func NewServiceFromConfig(ctx context.Context, cfg *config.Config) (*Service, error) {
	prompt, err := NewPrompt(cfg.Prompts.SemanticSearch)
	if err != nil {
		return nil, err
	}

	backend := func(slot string, pc config.ProviderConfig) Backend {
		b := Backend{Name: strings.ToLower(strings.TrimSpace(pc.Provider))}
		if b.Name == "" {
			return b
		}
		client, err := llm.NewClient(ctx, pc)
		if err != nil {
			log.Printf("Warning: %s provider %s unavailable: %v", slot, b.Name, err)
			return b
		}
		b.Client = client
		return b
	}

	return NewService(
		backend(SlotPrimary, cfg.AI.Primary),
		backend(SlotSecondary, cfg.AI.Secondary),
		Options{
			Prompt:     prompt,
			MaxResults: cfg.AI.MaxResults,
			CacheSize:  cfg.AI.CacheSize,
			CacheTTL:   cfg.AI.TTL(),
		},
	), nil
}

// resolveSlot maps a slot name or a configured provider name to its slot.
// Empty means primary.
func (s *Service) resolveSlot(provider string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(provider))
	if p == "" || p == SlotPrimary || p == SlotSecondary {
		if p == "" {
			p = SlotPrimary
		}
		return p, nil
	}
	for _, slot := range []string{SlotPrimary, SlotSecondary} {
		if s.backends[slot].Name == p {
			return slot, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
}

func (s *Service) Search(ctx context.Context, req Request) (*model.SemanticResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if len(req.Projects) == 0 {
		return nil, ErrNoProjects
	}
	slot, err := s.resolveSlot(req.Provider)
	if err != nil {
		return nil, err
	}

	key := slot + "|" + query
	if cached, ok := s.cache.Get(key); ok {
		hit := detach(cached)
		hit.Cached = true
		return hit, nil
	}

	backend := s.backends[slot]
	if backend.Client == nil {
		return nil, &UpstreamServiceError{Provider: slot, Err: ErrProviderUnavailable}
	}

	maxResults := req.Filters.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}
	filtered := ApplyFilters(req.Projects, req.Filters)
	selected := SelectForAnalysis(filtered, maxResults)
	log.Printf("Semantic search %q via %s (%s): %d of %d projects", query, slot, backend.Name, len(selected), len(req.Projects))

	prompt, err := s.prompt.Build(query, selected, len(req.Projects))
	if err != nil {
		return nil, err
	}

	reply, err := backend.Client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Semantic search via %s failed: %v", slot, err)
		return nil, &UpstreamServiceError{Provider: slot, Err: err}
	}

	matches, total, interpretation, err := ParseResults(reply)
	if err != nil {
		log.Printf("Failed to parse %s response: %v", slot, err)
		return nil, &UpstreamServiceError{Provider: slot, Err: fmt.Errorf("failed to parse AI response: %w", err)}
	}

	resp := &model.SemanticResponse{
		Success:              true,
		Matches:              matches,
		TotalMatches:         total,
		SearchInterpretation: interpretation,
		TokenUsage:           EstimateUsage(prompt, reply),
	}
	s.cache.Add(key, resp)

	return detach(resp), nil
}

// detach copies a response so callers cannot reach the cached matches.
func detach(resp *model.SemanticResponse) *model.SemanticResponse {
	out := *resp
	out.Matches = slices.Clone(resp.Matches)
	if resp.TokenUsage != nil {
		usage := *resp.TokenUsage
		out.TokenUsage = &usage
	}
	return &out
}

// Close closes every backend client that holds resources, such as the
// Gemini client's connection.
func (s *Service) Close() error {
	var errs []error
	for _, slot := range []string{SlotPrimary, SlotSecondary} {
		if c, ok := s.backends[slot].Client.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s client: %w", slot, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Purge drops cached responses, e.g. after the project feed changes.
func (s *Service) Purge() {
	s.cache.Purge()
}

// Available reports whether a slot (or provider name) has a usable client.
func (s *Service) Available(provider string) bool {
	slot, err := s.resolveSlot(provider)
	if err != nil {
		return false
	}
	return s.backends[slot].Client != nil
}

// EstimateUsage approximates token counts at four characters per token.
func EstimateUsage(prompt, completion string) *model.TokenUsage {
	p, c := len(prompt)/4, len(completion)/4
	return &model.TokenUsage{PromptTokens: p, CompletionTokens: c, TotalTokens: p + c}
}
