package handlers

import (
	"net/http"

	"tshort_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Wallet returns the caller's balances and withdrawal history.
func (h *Handler) Wallet(c *gin.Context) {
	_, ownerKey, ok := caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	w, err := h.Wallets.GetWallet(c.Request.Context(), ownerKey)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

// SubmitWithdrawal creates a pending payout request and moves the amount
// from currentBalance to pendingBalance.
func (h *Handler) SubmitWithdrawal(c *gin.Context) {
	_, ownerKey, ok := caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var in service.WithdrawalInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	req, err := h.Wallets.SubmitWithdrawal(c.Request.Context(), ownerKey, in)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}
