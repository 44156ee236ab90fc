package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/seniormoment/seniormoment/api/v1"
	srvErrors "github.com/seniormoment/seniormoment/pkg/errors"
)

// GetFunnelStatus returns the running sound and the queue in start order
// (GET /funnel)
func (h *Handler) GetFunnelStatus(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewFunnelStatus(h.funnel.Status()))
}

// RemoveFunnelItem drops a queued sound
// (DELETE /funnel/items/{id})
func (h *Handler) RemoveFunnelItem(c *gin.Context, id string) {
	itemID, ok := parseID(c, id)
	if !ok {
		return
	}
	if !h.funnel.Remove(itemID) {
		writeError(c, "funnel_handler", "failed to remove item", srvErrors.NewFunnelItemNotFoundError(id))
		return
	}
	c.Status(http.StatusNoContent)
}
