package handlers

import (
	"net/http"

	"tshort_dashboard/internal/domain"
	"tshort_dashboard/internal/logger"
	"tshort_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// ResolveReferral resolves a referral code for the public signup page.
// Unknown codes return 404; a full link returns 409.
func (h *Handler) ResolveReferral(c *gin.Context) {
	code := c.Param("code")

	ref, err := h.Referrals.FindReferrerByCode(c.Request.Context(), code)
	if err != nil {
		respondErr(c, err)
		return
	}
	if ref == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid referral code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"referrer_email": ref.Email,
		"percentage":     ref.Percentage,
	})
}

type ReferralSignupRequest struct {
	IDToken string `json:"id_token" binding:"required"`
	Code    string `json:"code" binding:"required"`
}

// SignupWithReferral provisions a new account attributed to a referral
// code. An identity that already has an account is signed in instead; the
// signup is not re-registered on the referrer's link.
func (h *Handler) SignupWithReferral(c *gin.Context) {
	var req ReferralSignupRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id_token and code are required"})
		return
	}

	id, err := service.VerifyIdentityToken(req.IDToken, h.Cfg.IdentitySecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid identity token"})
		return
	}

	ctx := c.Request.Context()

	ref, err := h.Referrals.FindReferrerByCode(ctx, req.Code)
	if err != nil {
		respondErr(c, err)
		return
	}
	if ref == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid referral code"})
		return
	}

	ownerKey := domain.OwnerKey(id.Email)
	exists, err := h.Store.Exists(ctx, "users/"+ownerKey)
	if err != nil {
		respondErr(c, err)
		return
	}

	status := service.StatusNew
	if exists {
		// Re-signup through a referral link must not overwrite the
		// existing tree or double-count on the referrer's link.
		status, err = h.Accounts.EnsureAccount(ctx, id)
		if err != nil {
			respondErr(c, err)
			return
		}
	} else {
		if err := h.Accounts.CreateAccountWithReferral(ctx, id, id.DisplayName(), ref, req.Code); err != nil {
			respondErr(c, err)
			return
		}
		if err := h.Referrals.RegisterSignup(ctx, ref, id); err != nil {
			// The account exists but the referrer's counters were not
			// updated; surface the failure for the caller to reconcile.
			logger.Error("referral signup registration failed", "code", req.Code, "error", err)
			respondErr(c, err)
			return
		}
	}

	token, err := service.GenerateSessionToken(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"status": status,
	})
}
