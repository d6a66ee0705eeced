// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes the index contracts over HTTP. It is a pure
// pass-through adapter: query parameters map onto search options, internal
// error kinds map onto status codes, and no search semantics live here.
// Implements: prd005-api;
//
//	docs/ARCHITECTURE § API.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pdiddy/patent-engine/internal/index"
	"github.com/pdiddy/patent-engine/pkg/types"
)

// Server serves the patent search API over a shared index store.
type Server struct {
	store  *index.Store
	search types.SearchConfig
	router *gin.Engine
}

// NewServer builds the router over the given store.
func NewServer(store *index.Store, searchCfg types.SearchConfig, serverCfg types.ServerConfig) *Server {
	s := &Server{store: store, search: searchCfg}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(serverCfg.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = serverCfg.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/search", s.handleSearch)
	r.GET("/api/search/:field/:value", s.handleFieldSearch)
	r.GET("/api/stats", s.handleStats)
	r.POST("/api/setup", s.handleSetup)

	s.router = r
	return s
}

// Router returns the HTTP handler for serving or testing.
func (s *Server) Router() http.Handler {
	return s.router
}

// searchResponse is the wire shape of a search answer.
type searchResponse struct {
	Total   int                  `json:"total"`
	Results []types.ScoredRecord `json:"results"`
	Engine  string               `json:"engine"`
}

func (s *Server) handleSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	limit := s.search.MaxResults
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	opts := index.SearchOptions{
		Limit:          limit,
		CandidateLimit: s.search.CandidateLimit,
		Category:       c.Query("category"),
		Assignee:       c.Query("assignee"),
	}

	results, err := s.store.Search(c.Request.Context(), query, opts)
	if err != nil {
		s.renderError(c, err)
		return
	}
	if results == nil {
		results = []types.ScoredRecord{}
	}

	c.JSON(http.StatusOK, searchResponse{
		Total:   len(results),
		Results: results,
		Engine:  index.EngineName,
	})
}

func (s *Server) handleFieldSearch(c *gin.Context) {
	records, err := s.store.SearchByField(
		c.Request.Context(), c.Param("field"), c.Param("value"), s.search.MaxResults)
	if err != nil {
		s.renderError(c, err)
		return
	}
	if records == nil {
		records = []types.PatentRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   len(records),
		"results": records,
		"engine":  index.EngineName,
	})
}

func (s *Server) handleStats(c *gin.Context) {
	aggs, err := s.store.Aggregate(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, aggs)
}

// handleSetup ingests a JSON array of records from the request body and
// rebuilds the index wholesale.
func (s *Server) handleSetup(c *gin.Context) {
	var records []types.PatentRecord
	if err := c.ShouldBindJSON(&records); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON array of patent records"})
		return
	}

	if err := s.store.Rebuild(c.Request.Context(), records); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"indexed": len(records)})
}

func (s *Server) handleHealth(c *gin.Context) {
	if _, err := s.store.Aggregate(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "engine": index.EngineName})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "engine": index.EngineName})
}

// renderError maps internal error kinds onto HTTP status codes.
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, index.ErrInvalidField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, index.ErrBusy):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "retryable": true})
	case errors.Is(err, index.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
