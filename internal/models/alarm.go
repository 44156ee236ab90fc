package models

import (
	"time"

	"github.com/google/uuid"
)

// AlarmState represents the current state of an alarm.
type AlarmState string

const (
	// AlarmStateCounting - countdown running
	AlarmStateCounting AlarmState = "counting"
	// AlarmStatePaused - countdown frozen, remaining time kept
	AlarmStatePaused AlarmState = "paused"
	// AlarmStateRinging - countdown elapsed, rings until dismissed
	AlarmStateRinging AlarmState = "ringing"
	// AlarmStateDismissed - terminal state
	AlarmStateDismissed AlarmState = "dismissed"
)

func (s AlarmState) Value() string {
	return string(s)
}

// Alarm is a countdown that rings through the sound funnel when it elapses.
type Alarm struct {
	ID        uuid.UUID
	Name      string
	Clip      string
	Duration  time.Duration
	Remaining time.Duration
	State     AlarmState
	Rings     int
	CreatedAt time.Time
	// NextRingAt is set while ringing and waiting for the next ring.
	NextRingAt *time.Time
}

// AlarmPreset is an alarm definition loaded from the presets file.
type AlarmPreset struct {
	Name     string        `yaml:"name"`
	Duration time.Duration `yaml:"duration"`
	Clip     string        `yaml:"clip"`
}
