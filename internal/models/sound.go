package models

import "time"

// SoundKind is the kind of operation queued on the audio device.
type SoundKind string

const (
	SoundKindPlay   SoundKind = "play"
	SoundKindSay    SoundKind = "say"
	SoundKindRecord SoundKind = "record"
)

// SoundRequest describes an operation accepted by the player.
type SoundRequest struct {
	Kind     SoundKind
	Text     string
	Clip     string
	Duration time.Duration
	Priority int
}
