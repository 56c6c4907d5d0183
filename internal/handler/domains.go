// Package handler contains the gin HTTP handlers for the domain-scout API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/domain-scout/internal/dispatcher"
	"github.com/jonesrussell/domain-scout/internal/generator"
	"github.com/jonesrussell/domain-scout/internal/logger"
)

// DomainHandler serves candidate generation and availability checks.
type DomainHandler struct {
	gen            *generator.Generator
	disp           *dispatcher.Dispatcher
	log            logger.Logger
	maxSuggestions int
}

// NewDomainHandler creates a DomainHandler with the given dependencies.
func NewDomainHandler(
	gen *generator.Generator,
	disp *dispatcher.Dispatcher,
	log logger.Logger,
	maxSuggestions int,
) *DomainHandler {
	return &DomainHandler{
		gen:            gen,
		disp:           disp,
		log:            log,
		maxSuggestions: maxSuggestions,
	}
}

// suggestRequest is the body of POST /api/v1/domains/suggest.
type suggestRequest struct {
	Keywords   []string `binding:"required,min=1" json:"keywords"`
	Vibe       string   `json:"vibe"`
	TLDs       []string `json:"tlds"`
	MaxResults int      `json:"max_results"`
}

// checkRequest is the body of POST /api/v1/domains/check.
type checkRequest struct {
	Domains []string `binding:"required,min=1" json:"domains"`
}

// HandleSuggest generates candidate domains for a set of keywords and
// checks availability for the leading candidates. The full candidate list
// is returned alongside the checked subset.
func (h *DomainHandler) HandleSuggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keywords are required"})
		return
	}

	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > h.maxSuggestions {
		maxResults = h.maxSuggestions
	}

	candidates := h.gen.Generate(req.Keywords, generator.Options{
		Vibe:       req.Vibe,
		TLDs:       req.TLDs,
		MaxResults: maxResults,
	})

	if len(candidates) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"candidates": []string{},
			"results":    []any{},
		})
		return
	}

	results := h.disp.CheckAvailability(c.Request.Context(), candidates)

	h.log.Info("Suggested domains",
		logger.Int("keywords", len(req.Keywords)),
		logger.Int("candidates", len(candidates)),
		logger.Int("checked", len(results)),
	)

	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"results":    results,
	})
}

// HandleCheck checks availability for an explicit list of domains.
func (h *DomainHandler) HandleCheck(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "domains are required"})
		return
	}

	results := h.disp.CheckAvailability(c.Request.Context(), req.Domains)

	c.JSON(http.StatusOK, gin.H{"results": results})
}
