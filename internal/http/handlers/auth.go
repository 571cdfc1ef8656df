package handlers

import (
	"net/http"

	"tshort_dashboard/internal/http/middleware"
	"tshort_dashboard/internal/logger"
	"tshort_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// Auth exchanges an identity-provider token for a session token, ensuring
// the account tree exists along the way.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id_token is required"})
		return
	}

	id, err := service.VerifyIdentityToken(req.IDToken, h.Cfg.IdentitySecret)
	if err != nil {
		middleware.AuthAttempts.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity token"})
		return
	}

	status, err := h.Accounts.EnsureAccount(c.Request.Context(), id)
	if err != nil {
		logger.Error("ensure account failed", "email", id.Email, "error", err)
		respondErr(c, err)
		return
	}

	token, err := service.GenerateSessionToken(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	middleware.AuthAttempts.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"status": status,
		"user": gin.H{
			"uid":   id.UID,
			"email": id.Email,
			"name":  id.DisplayName(),
		},
	})
}
