package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	v1 "github.com/seniormoment/seniormoment/api/v1"
	"github.com/seniormoment/seniormoment/internal/models"
	srvErrors "github.com/seniormoment/seniormoment/pkg/errors"
)

// Say queues text to be spoken
// (POST /say)
func (h *Handler) Say(c *gin.Context) {
	var req v1.SayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.submit(c, models.SoundRequest{Kind: models.SoundKindSay, Text: req.Text, Priority: priority(req.Priority)})
}

// Play queues a clip
// (POST /play)
func (h *Handler) Play(c *gin.Context) {
	var req v1.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.submit(c, models.SoundRequest{Kind: models.SoundKindPlay, Clip: req.Clip, Priority: priority(req.Priority)})
}

// Record queues a recording
// (POST /record)
func (h *Handler) Record(c *gin.Context) {
	var req v1.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := time.ParseDuration(req.Duration)
	if err != nil {
		writeError(c, "sound_handler", "failed to queue recording", srvErrors.NewValidationError("duration", err))
		return
	}
	h.submit(c, models.SoundRequest{Kind: models.SoundKindRecord, Duration: d, Priority: priority(req.Priority)})
}

func (h *Handler) submit(c *gin.Context, req models.SoundRequest) {
	item, err := h.player.Submit(req, nil)
	if err != nil {
		writeError(c, "sound_handler", "failed to queue sound", err)
		return
	}
	c.JSON(http.StatusAccepted, v1.NewQueuedSound(item))
}

func priority(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
