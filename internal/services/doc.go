// Package services implements the business logic layer for seniormoment.
//
// Services sit between the HTTP handlers and the sound player. Every sound they
// make goes through the player, and so through the single funnel in front of
// the audio device.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    └── AlarmService ──► Ringer (sound.Player) ──► funnel.Funnel ──► Device
//	            ▲
//	            └── Heartbeat.Tick
//
// # AlarmService
//
// AlarmService keeps countdown alarms in memory and rings them when they
// elapse.
//
// State Machine:
//
//	┌──────────┐  Pause   ┌────────┐
//	│ Counting │─────────►│ Paused │
//	│          │◄─────────│        │
//	└──────────┘  Resume  └────────┘
//	     │                    │
//	     │ (elapsed)          │ Dismiss
//	     ▼                    ▼
//	┌─────────┐  Dismiss  ┌───────────┐
//	│ Ringing │──────────►│ Dismissed │
//	└─────────┘           └───────────┘
//	     │                 (terminal)
//	     └── (max rings) ──────►
//
// States:
//   - Counting: countdown running, checked on every Tick
//   - Paused: countdown frozen, remaining time kept
//   - Ringing: the clip is queued on the player; rings again until dismissed
//   - Dismissed: terminal; a queued ring is dropped, a playing ring is cut short
//
// Key behaviors:
//   - Rings are queued with sound.PriorityAlarm, so speech and recordings
//     requested by the user go first
//   - After each ring ends the next one is scheduled with an exponential
//     backoff (cenkalti/backoff), starting at the re-ring interval and capped at
//     the re-ring maximum
//   - After the configured number of rings the alarm dismisses itself
//   - Pausing a ringing alarm is rejected with InvalidStateError
//
// Usage:
//
//	alarms := services.NewAlarmService(player, services.WithReRing(30*time.Second, 5*time.Minute))
//	hb.Add(alarms)
//	a, err := alarms.Create(ctx, services.CreateAlarmParams{Name: "tea", Duration: 4 * time.Minute})
//	_, err = alarms.Dismiss(ctx, a.ID)
//
// # Presets
//
// LoadPresets reads a YAML list of alarms that the run command creates at
// startup through CreateFromPresets.
//
// # Thread Safety
//
// AlarmService state is protected by a sync.Mutex. The ringer is never called
// with the mutex held.
package services
