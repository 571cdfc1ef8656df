package handlers

import (
	"net/http"
	"time"

	"tshort_dashboard/internal/domain"
	"tshort_dashboard/internal/logger"
	"tshort_dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const feedInterval = 5 * time.Second

// Feed streams the caller's dashboard and wallet projections over a
// websocket, one snapshot immediately and then one per interval. The
// session token rides the query string since browsers cannot set headers
// on websocket dials.
func (h *Handler) Feed(c *gin.Context) {
	id, err := service.ParseSessionToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	ownerKey := domain.OwnerKey(id.Email)

	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Drain client frames so closes are noticed promptly.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request.Context()
	ticker := time.NewTicker(feedInterval)
	defer ticker.Stop()

	for {
		dash, derr := h.Accounts.GetDashboard(ctx, ownerKey)
		wallet, werr := h.Wallets.GetWallet(ctx, ownerKey)
		if derr != nil || werr != nil {
			logger.Warn("feed snapshot failed", "owner", ownerKey)
		} else if err := conn.WriteJSON(gin.H{
			"dashboard": dash,
			"wallet":    wallet,
			"at":        time.Now().UnixMilli(),
		}); err != nil {
			return
		}

		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
