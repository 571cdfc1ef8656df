package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CreateReferralLinkRequest struct {
	Percentage float64 `json:"percentage"`
}

// CreateReferralLink issues a new referral link for the caller.
func (h *Handler) CreateReferralLink(c *gin.Context) {
	id, ownerKey, ok := caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateReferralLinkRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "percentage is required"})
		return
	}

	link, err := h.Referrals.CreateReferralLink(c.Request.Context(), ownerKey, id.Email, req.Percentage)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"link":       link,
		"signup_url": h.Referrals.SignupURL(link.ReferralCode),
	})
}

// ListReferralLinks returns the caller's referral links with their share
// URLs.
func (h *Handler) ListReferralLinks(c *gin.Context) {
	_, ownerKey, ok := caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	links, err := h.Referrals.ListReferralLinks(c.Request.Context(), ownerKey)
	if err != nil {
		respondErr(c, err)
		return
	}

	out := make([]gin.H, 0, len(links))
	for linkID, link := range links {
		link.ID = linkID
		out = append(out, gin.H{
			"link":       link,
			"signup_url": h.Referrals.SignupURL(link.ReferralCode),
		})
	}

	c.JSON(http.StatusOK, gin.H{"links": out})
}
