package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	v1 "github.com/seniormoment/seniormoment/api/v1"
	"github.com/seniormoment/seniormoment/internal/models"
	"github.com/seniormoment/seniormoment/internal/services"
	srvErrors "github.com/seniormoment/seniormoment/pkg/errors"
)

// ListAlarms returns every alarm
// (GET /alarms)
func (h *Handler) ListAlarms(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewAlarmList(h.alarmSrv.List(c.Request.Context())))
}

// CreateAlarm starts a new countdown
// (POST /alarms)
func (h *Handler) CreateAlarm(c *gin.Context) {
	var req v1.CreateAlarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := time.ParseDuration(req.Duration)
	if err != nil {
		writeError(c, "alarm_handler", "failed to create alarm", srvErrors.NewValidationError("duration", err))
		return
	}
	params := services.CreateAlarmParams{Name: req.Name, Duration: d}
	if req.Clip != nil {
		params.Clip = *req.Clip
	}

	alarm, err := h.alarmSrv.Create(c.Request.Context(), params)
	if err != nil {
		writeError(c, "alarm_handler", "failed to create alarm", err)
		return
	}
	c.JSON(http.StatusCreated, v1.NewAlarmFromModel(alarm))
}

// GetAlarm returns one alarm
// (GET /alarms/{id})
func (h *Handler) GetAlarm(c *gin.Context, id string) {
	h.withAlarm(c, id, "failed to get alarm", h.alarmSrv.Get)
}

// DeleteAlarm dismisses and forgets an alarm
// (DELETE /alarms/{id})
func (h *Handler) DeleteAlarm(c *gin.Context, id string) {
	alarmID, ok := parseID(c, id)
	if !ok {
		return
	}
	if err := h.alarmSrv.Delete(c.Request.Context(), alarmID); err != nil {
		writeError(c, "alarm_handler", "failed to delete alarm", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PauseAlarm freezes a counting alarm
// (POST /alarms/{id}/pause)
func (h *Handler) PauseAlarm(c *gin.Context, id string) {
	h.withAlarm(c, id, "failed to pause alarm", h.alarmSrv.Pause)
}

// ResumeAlarm restarts a paused alarm
// (POST /alarms/{id}/resume)
func (h *Handler) ResumeAlarm(c *gin.Context, id string) {
	h.withAlarm(c, id, "failed to resume alarm", h.alarmSrv.Resume)
}

// DismissAlarm stops an alarm for good
// (POST /alarms/{id}/dismiss)
func (h *Handler) DismissAlarm(c *gin.Context, id string) {
	h.withAlarm(c, id, "failed to dismiss alarm", h.alarmSrv.Dismiss)
}

func (h *Handler) withAlarm(c *gin.Context, id string, msg string, fn func(context.Context, uuid.UUID) (models.Alarm, error)) {
	alarmID, ok := parseID(c, id)
	if !ok {
		return
	}
	alarm, err := fn(c.Request.Context(), alarmID)
	if err != nil {
		writeError(c, "alarm_handler", msg, err)
		return
	}
	c.JSON(http.StatusOK, v1.NewAlarmFromModel(alarm))
}

func parseID(c *gin.Context, id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id: " + id})
		return uuid.Nil, false
	}
	return parsed, true
}
