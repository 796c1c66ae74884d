package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/projectsearch/internal/core"
	"github.com/agenthands/projectsearch/internal/core/model"
	"github.com/agenthands/projectsearch/internal/core/resolve"
	"github.com/agenthands/projectsearch/internal/core/semantic"
	"github.com/agenthands/projectsearch/internal/feed"
)

type fixture struct {
	router *gin.Engine
	feed   *MockSource
	llm    *MockLLM
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	src := &MockSource{Name: "projects", Rows: []model.RawRow{
		{"Title": "Data Pipeline", "Description": "Nightly ETL jobs", "Team": "Platform"},
		{"Title": "Solar Map", "Description": "Maps rooftop solar output", "Team": "Energy"},
	}}
	llm := &MockLLM{Response: `{"matches":[{"title":"Solar Map","description":"Maps rooftop solar output","relevance_score":93}],"total_matches":1,"search_interpretation":"renewables"}`}

	finder := core.NewFinder(core.Options{
		Feed: src,
		Resolver: resolve.New(&MockSource{Name: "lists", Rows: []model.RawRow{
			{"Title": "Solar Map", "Slug": "solar-map"},
		}}, "/app"),
		Semantic:  semantic.NewService(semantic.Backend{Name: "gemini", Client: llm}, semantic.Backend{Name: "claude"}, semantic.Options{}),
		Threshold: 0.35,
	})
	ctx := context.Background()
	_, err := finder.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, finder.InitResolver(ctx))

	return &fixture{
		router: NewServer(finder, true).SetupRouter(),
		feed:   src,
		llm:    llm,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func TestHealth(t *testing.T) {
	f := setup(t)
	w, body := f.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(2), body["projects"])
	assert.Equal(t, "ready", body["resolver"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagates(t *testing.T) {
	f := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestProjects(t *testing.T) {
	f := setup(t)
	w, body := f.do(t, http.MethodGet, "/api/projects", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["count"])
	projects := body["projects"].([]any)
	assert.Equal(t, "Data Pipeline", projects[0].(map[string]any)["title"])
}

func TestSearch(t *testing.T) {
	f := setup(t)

	t.Run("exact", func(t *testing.T) {
		w, body := f.do(t, http.MethodGet, "/api/search?q=solar&mode=exact", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "exact", body["mode"])
		assert.Equal(t, float64(1), body["count"])

		card := body["results"].([]any)[0].(map[string]any)
		assert.Equal(t, "Solar Map", card["title"])
		assert.Equal(t, "/app#list=solar-map&display=table", card["url"])
		assert.Nil(t, card["score"])
	})

	t.Run("fuzzy by default", func(t *testing.T) {
		w, body := f.do(t, http.MethodGet, "/api/search?q=dtaa+pipline", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "fuzzy", body["mode"])
		assert.Equal(t, 0.35, body["threshold"])

		card := body["results"].([]any)[0].(map[string]any)
		assert.Equal(t, "Data Pipeline", card["title"])
		assert.Equal(t, "#", card["url"])
		assert.NotNil(t, card["score"])
	})

	t.Run("empty query", func(t *testing.T) {
		_, body := f.do(t, http.MethodGet, "/api/search?q=", nil)
		assert.Equal(t, float64(0), body["count"])
		assert.Equal(t, []any{}, body["results"])
	})

	t.Run("bad mode", func(t *testing.T) {
		w, _ := f.do(t, http.MethodGet, "/api/search?q=x&mode=regex", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSetThreshold(t *testing.T) {
	f := setup(t)

	w, body := f.do(t, http.MethodPut, "/api/search/threshold", map[string]any{"threshold": 7})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["threshold"])

	w, _ = f.do(t, http.MethodPut, "/api/search/threshold", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggest(t *testing.T) {
	f := setup(t)

	w, body := f.do(t, http.MethodGet, "/api/suggest?q=slr", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"Solar Map"}, body["suggestions"])

	w, _ = f.do(t, http.MethodGet, "/api/suggest?q=slr&limit=lots", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolve(t *testing.T) {
	f := setup(t)

	_, body := f.do(t, http.MethodGet, "/api/resolve?title=SOLAR+MAP", nil)
	assert.Equal(t, "/app#list=solar-map&display=table", body["url"])

	_, body = f.do(t, http.MethodGet, "/api/resolve?title=Unknown&fallback=https://x.example", nil)
	assert.Equal(t, "https://x.example", body["url"])

	w, _ := f.do(t, http.MethodGet, "/api/resolve", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReloadFeed(t *testing.T) {
	f := setup(t)

	f.feed.Rows = append(f.feed.Rows, model.RawRow{"Title": "Harbor Watch"})
	w, body := f.do(t, http.MethodPost, "/api/feed/reload", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), body["count"])

	f.feed.Err = &feed.LoadError{Source: "projects", Err: errors.New("HTTP 404")}
	w, body = f.do(t, http.MethodPost, "/api/feed/reload", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "HTTP 404")

	_, body = f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, float64(3), body["projects"], "failed reload keeps previous records")
}

func TestSemanticSearch(t *testing.T) {
	f := setup(t)

	w, body := f.do(t, http.MethodPost, "/api/semantic-search", map[string]any{"query": "renewable energy"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["total_matches"])
	assert.Equal(t, "renewables", body["search_interpretation"])

	cards := body["cards"].([]any)
	require.Len(t, cards, 1)
	assert.Equal(t, "/app#list=solar-map&display=table", cards[0].(map[string]any)["url"])
}

func TestSemanticSearch_NoMatches(t *testing.T) {
	f := setup(t)
	f.llm.Response = `{"matches": [], "total_matches": 0, "search_interpretation": ""}`

	w, body := f.do(t, http.MethodPost, "/api/semantic-search", map[string]any{"query": "unicorns"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{}, body["matches"])
	assert.Equal(t, []any{}, body["cards"])
}

func TestSemanticSearch_Errors(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"empty query", map[string]any{"query": "  "}, http.StatusBadRequest},
		{"unknown provider", map[string]any{"query": "x", "provider": "mistral"}, http.StatusBadRequest},
		{"unconfigured provider", map[string]any{"query": "x", "provider": "secondary"}, http.StatusBadGateway},
		{"malformed body", "not an object", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := f.do(t, http.MethodPost, "/api/semantic-search", tt.body)
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}

	f.llm.Response = "I am not JSON"
	w, _ := f.do(t, http.MethodPost, "/api/semantic-search", map[string]any{"query": "fresh query"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(core.ErrNoFeed))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(&feed.EmptyDataError{Source: "x"}))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(&feed.ParseError{Line: 2, Err: errors.New("bad quote")}))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}
