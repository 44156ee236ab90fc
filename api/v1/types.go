package v1

import "time"

// AlarmState defines model for Alarm.State.
type AlarmState string

const (
	AlarmStateCounting  AlarmState = "counting"
	AlarmStatePaused    AlarmState = "paused"
	AlarmStateRinging   AlarmState = "ringing"
	AlarmStateDismissed AlarmState = "dismissed"
)

// Alarm defines model for Alarm.
type Alarm struct {
	Id         string     `json:"id"`
	Name       string     `json:"name"`
	Clip       string     `json:"clip"`
	Duration   string     `json:"duration"`
	Remaining  string     `json:"remaining"`
	State      AlarmState `json:"state"`
	Rings      int        `json:"rings"`
	CreatedAt  time.Time  `json:"createdAt"`
	NextRingAt *time.Time `json:"nextRingAt,omitempty"`
}

// AlarmList defines model for AlarmList.
type AlarmList struct {
	Alarms []Alarm `json:"alarms"`
}

// CreateAlarmRequest defines model for CreateAlarmRequest.
type CreateAlarmRequest struct {
	Name string `json:"name"`
	// Duration is a Go duration string, e.g. "4m30s".
	Duration string  `json:"duration" binding:"required"`
	Clip     *string `json:"clip,omitempty"`
}

// SayRequest defines model for SayRequest.
type SayRequest struct {
	Text     string `json:"text" binding:"required"`
	Priority *int   `json:"priority,omitempty"`
}

// PlayRequest defines model for PlayRequest.
type PlayRequest struct {
	Clip     string `json:"clip" binding:"required"`
	Priority *int   `json:"priority,omitempty"`
}

// RecordRequest defines model for RecordRequest.
type RecordRequest struct {
	Duration string `json:"duration" binding:"required"`
	Priority *int   `json:"priority,omitempty"`
}

// QueuedSound defines model for QueuedSound.
type QueuedSound struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// FunnelItem defines model for FunnelItem.
type FunnelItem struct {
	Id       string  `json:"id"`
	Name     string  `json:"name"`
	Priority int     `json:"priority"`
	Age      float64 `json:"age"`
}

// RunningItem defines model for RunningItem.
type RunningItem struct {
	FunnelItem
	StartedAt time.Time `json:"startedAt"`
}

// FunnelStatus defines model for FunnelStatus.
type FunnelStatus struct {
	Running *RunningItem `json:"running,omitempty"`
	Pending []FunnelItem `json:"pending"`
	Closed  bool         `json:"closed"`
}

// Error defines model for Error.
type Error struct {
	Error string `json:"error"`
}
