package handlers

import (
	"errors"
	"net/http"

	"tshort_dashboard/internal/config"
	"tshort_dashboard/internal/service"
	"tshort_dashboard/internal/store"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Store     *store.Client
	Cfg       *config.Config
	Accounts  *service.AccountService
	Links     *service.LinkService
	Referrals *service.ReferralService
	Wallets   *service.WalletService
}

func NewHandler(st *store.Client, cfg *config.Config) *Handler {
	return &Handler{
		Store:     st,
		Cfg:       cfg,
		Accounts:  service.NewAccountService(st, cfg),
		Links:     service.NewLinkService(st, cfg),
		Referrals: service.NewReferralService(st, cfg),
		Wallets:   service.NewWalletService(st, cfg),
	}
}

// caller pulls the identity the JWT middleware stashed in the context.
func caller(c *gin.Context) (service.Identity, string, bool) {
	email, ok := c.Get("email")
	if !ok {
		return service.Identity{}, "", false
	}
	ownerKey := c.GetString("owner_key")
	id := service.Identity{
		UID:   c.GetString("uid"),
		Email: email.(string),
		Name:  c.GetString("name"),
	}
	return id, ownerKey, true
}

// respondErr maps service errors onto HTTP statuses: validation 400,
// capacity 409, missing path 404, anything else (store round-trip
// failures included) 500.
func respondErr(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Reason})
		return
	}
	var cerr *service.CapacityError
	if errors.As(err, &cerr) {
		c.JSON(http.StatusConflict, gin.H{"error": cerr.Reason})
		return
	}
	if errors.Is(err, store.ErrPathNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
