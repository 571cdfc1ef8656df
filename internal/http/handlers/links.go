package handlers

import (
	"net/http"

	"tshort_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type SaveLinkRequest struct {
	URL    string `json:"url" binding:"required"`
	Source string `json:"source"`
}

// SaveLink registers a submitted URL in the caller's collection.
func (h *Handler) SaveLink(c *gin.Context) {
	id, ownerKey, ok := caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SaveLinkRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	if req.Source == "" {
		req.Source = service.SourceWebsite
	}

	res, err := h.Links.SaveLink(c.Request.Context(), ownerKey, id.Email, req.URL, req.Source)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ListLinks returns the caller's collection for a source (default website).
func (h *Handler) ListLinks(c *gin.Context) {
	_, ownerKey, ok := caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	source := c.DefaultQuery("source", service.SourceWebsite)
	col, err := h.Links.GetCollection(c.Request.Context(), ownerKey, source)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, col)
}
