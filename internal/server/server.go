package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agenthands/projectsearch/internal/core"
	"github.com/agenthands/projectsearch/internal/core/model"
	"github.com/agenthands/projectsearch/internal/core/semantic"
	"github.com/agenthands/projectsearch/internal/feed"
	"github.com/agenthands/projectsearch/internal/render"
)

const (
	RequestIDHeader     = "X-Request-ID"
	defaultSuggestLimit = 8
)

type Server struct {
	Finder *core.Finder
	// Fuzzy is the search mode used when a request names none.
	Fuzzy bool
}

func NewServer(finder *core.Finder, fuzzy bool) *Server {
	return &Server{Finder: finder, Fuzzy: fuzzy}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(RequestID())

	r.GET("/health", s.Health)

	api := r.Group("/api")
	api.GET("/projects", s.Projects)
	api.GET("/search", s.Search)
	api.PUT("/search/threshold", s.SetThreshold)
	api.GET("/suggest", s.Suggest)
	api.GET("/resolve", s.Resolve)
	api.POST("/feed/reload", s.ReloadFeed)
	api.POST("/resolver/reload", s.ReloadResolver)
	api.POST("/semantic-search", s.SemanticSearch)

	return r
}

// RequestID stamps every request and response with an id, keeping one the
// client already sent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"projects":  s.Finder.Len(),
		"loaded_at": s.Finder.LoadedAt(),
		"resolver":  s.Finder.ResolverState().String(),
		"threshold": s.Finder.Threshold(),
	})
}

func (s *Server) Projects(c *gin.Context) {
	records := s.Finder.Records()
	c.JSON(http.StatusOK, gin.H{
		"projects": records,
		"count":    len(records),
	})
}

func (s *Server) Search(c *gin.Context) {
	fuzzy := s.Fuzzy
	mode := strings.ToLower(c.Query("mode"))
	switch mode {
	case "":
	case "fuzzy":
		fuzzy = true
	case "exact":
		fuzzy = false
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be 'fuzzy' or 'exact'"})
		return
	}
	mode = "exact"
	if fuzzy {
		mode = "fuzzy"
	}

	results := s.Finder.Search(c.Query("q"), fuzzy)
	c.JSON(http.StatusOK, gin.H{
		"results":   s.Finder.Cards(results),
		"count":     len(results),
		"mode":      mode,
		"threshold": s.Finder.Threshold(),
	})
}

type ThresholdRequest struct {
	Threshold *float64 `json:"threshold"`
}

func (s *Server) SetThreshold(c *gin.Context) {
	var req ThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Threshold == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: threshold is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"threshold": s.Finder.SetThreshold(*req.Threshold)})
}

func (s *Server) Suggest(c *gin.Context) {
	limit := defaultSuggestLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": s.Finder.Suggest(c.Query("q"), limit)})
}

func (s *Server) Resolve(c *gin.Context) {
	title := c.Query("title")
	if strings.TrimSpace(title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	fallback := c.DefaultQuery("fallback", model.URLPlaceholder)
	c.JSON(http.StatusOK, gin.H{
		"title":    title,
		"url":      s.Finder.Resolve(title, fallback),
		"resolver": s.Finder.ResolverState().String(),
	})
}

func (s *Server) ReloadFeed(c *gin.Context) {
	n, err := s.Finder.Load(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "count": n})
}

func (s *Server) ReloadResolver(c *gin.Context) {
	if err := s.Finder.InitResolver(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "resolver": s.Finder.ResolverState().String()})
}

type SemanticSearchResponse struct {
	*model.SemanticResponse
	Cards []render.Card `json:"cards"`
}

func (s *Server) SemanticSearch(c *gin.Context) {
	var req semantic.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	resp, cards, err := s.Finder.AskRequest(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SemanticSearchResponse{SemanticResponse: resp, Cards: cards})
}

// fail maps an operation error to a status code.
func (s *Server) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s %s failed: %v", c.GetString("request_id"), c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func StatusFor(err error) int {
	var (
		upstream *semantic.UpstreamServiceError
		loadErr  *feed.LoadError
		parseErr *feed.ParseError
		emptyErr *feed.EmptyDataError
	)
	switch {
	case errors.Is(err, semantic.ErrEmptyQuery),
		errors.Is(err, semantic.ErrNoProjects),
		errors.Is(err, semantic.ErrUnknownProvider):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNoFeed),
		errors.Is(err, core.ErrNoResolver),
		errors.Is(err, core.ErrNoSemantic):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstream), errors.As(err, &loadErr):
		return http.StatusBadGateway
	case errors.As(err, &parseErr), errors.As(err, &emptyErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
