package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jonesrussell/domain-scout/internal/domain"
	"github.com/jonesrussell/domain-scout/internal/logger"
	"github.com/jonesrussell/domain-scout/internal/storage"
)

// FavoriteStore is the persistence surface the favorites handler needs.
type FavoriteStore interface {
	Save(ctx context.Context, domainName, projectIdea string) (*domain.Favorite, error)
	List(ctx context.Context) ([]domain.Favorite, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FavoriteHandler serves the favorites CRUD endpoints.
type FavoriteHandler struct {
	store FavoriteStore
	log   logger.Logger
}

// NewFavoriteHandler creates a FavoriteHandler over the given store.
func NewFavoriteHandler(store FavoriteStore, log logger.Logger) *FavoriteHandler {
	return &FavoriteHandler{store: store, log: log}
}

// saveFavoriteRequest is the body of POST /api/v1/favorites.
type saveFavoriteRequest struct {
	Domain      string `binding:"required" json:"domain"`
	ProjectIdea string `json:"project_idea"`
}

// HandleSave saves a domain to the favorites list.
func (h *FavoriteHandler) HandleSave(c *gin.Context) {
	var req saveFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "domain is required"})
		return
	}

	fav, err := h.store.Save(c.Request.Context(), req.Domain, req.ProjectIdea)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "domain already saved"})
			return
		}
		h.log.Error("Failed to save favorite",
			logger.String("domain", req.Domain),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save favorite"})
		return
	}

	c.JSON(http.StatusCreated, fav)
}

// HandleList returns all saved favorites, newest first.
func (h *FavoriteHandler) HandleList(c *gin.Context) {
	favorites, err := h.store.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list favorites", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// HandleDelete removes a favorite by ID.
func (h *FavoriteHandler) HandleDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid favorite id"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
			return
		}
		h.log.Error("Failed to delete favorite",
			logger.String("id", id.String()),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete favorite"})
		return
	}

	c.Status(http.StatusNoContent)
}
