package handlers

import (
	"errors"
	"net/http"

	"tshort_dashboard/internal/store"

	"github.com/gin-gonic/gin"
)

// Me returns the caller's profile section.
func (h *Handler) Me(c *gin.Context) {
	_, ownerKey, ok := caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	acct, err := h.Accounts.GetAccount(c.Request.Context(), ownerKey)
	if errors.Is(err, store.ErrPathNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  acct.Profile,
		"referral": acct.Referral,
	})
}

// Dashboard returns the earning counters and the 90-day window.
func (h *Handler) Dashboard(c *gin.Context) {
	_, ownerKey, ok := caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	dash, err := h.Accounts.GetDashboard(c.Request.Context(), ownerKey)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}
