package v1

import (
	"github.com/gin-gonic/gin"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /funnel)
	GetFunnelStatus(c *gin.Context)
	// (DELETE /funnel/items/{id})
	RemoveFunnelItem(c *gin.Context, id string)
	// (GET /alarms)
	ListAlarms(c *gin.Context)
	// (POST /alarms)
	CreateAlarm(c *gin.Context)
	// (GET /alarms/{id})
	GetAlarm(c *gin.Context, id string)
	// (DELETE /alarms/{id})
	DeleteAlarm(c *gin.Context, id string)
	// (POST /alarms/{id}/pause)
	PauseAlarm(c *gin.Context, id string)
	// (POST /alarms/{id}/resume)
	ResumeAlarm(c *gin.Context, id string)
	// (POST /alarms/{id}/dismiss)
	DismissAlarm(c *gin.Context, id string)
	// (POST /say)
	Say(c *gin.Context)
	// (POST /play)
	Play(c *gin.Context)
	// (POST /record)
	Record(c *gin.Context)
}

// RegisterHandlers adds every route of si to router.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	withID := func(fn func(*gin.Context, string)) gin.HandlerFunc {
		return func(c *gin.Context) {
			fn(c, c.Param("id"))
		}
	}

	router.GET("/funnel", si.GetFunnelStatus)
	router.DELETE("/funnel/items/:id", withID(si.RemoveFunnelItem))

	router.GET("/alarms", si.ListAlarms)
	router.POST("/alarms", si.CreateAlarm)
	router.GET("/alarms/:id", withID(si.GetAlarm))
	router.DELETE("/alarms/:id", withID(si.DeleteAlarm))
	router.POST("/alarms/:id/pause", withID(si.PauseAlarm))
	router.POST("/alarms/:id/resume", withID(si.ResumeAlarm))
	router.POST("/alarms/:id/dismiss", withID(si.DismissAlarm))

	router.POST("/say", si.Say)
	router.POST("/play", si.Play)
	router.POST("/record", si.Record)
}
