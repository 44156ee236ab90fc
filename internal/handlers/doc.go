// Package handlers implements the HTTP API layer for seniormoment.
//
// Handlers delegate to the alarm service, the sound player and the funnel,
// and focus on request validation, response formatting and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request validation                                           │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│       AlarmService │ sound.Player │ funnel.Funnel               │
//	└─────────────────────────────────────────────────────────────────┘
//
// The Handler implements v1.ServerInterface and is registered with:
//
//	v1.RegisterHandlers(router, handler)
//
// # API Endpoints
//
// Alarm Endpoints (alarms.go):
//
//	┌────────┬──────────────────────┬───────────────────────────────────┐
//	│ Method │ Endpoint             │ Description                       │
//	├────────┼──────────────────────┼───────────────────────────────────┤
//	│ GET    │ /alarms              │ List alarms, oldest first         │
//	│ POST   │ /alarms              │ Create an alarm                   │
//	│ GET    │ /alarms/{id}         │ Get one alarm                     │
//	│ DELETE │ /alarms/{id}         │ Dismiss and forget an alarm       │
//	│ POST   │ /alarms/{id}/pause   │ Freeze the countdown              │
//	│ POST   │ /alarms/{id}/resume  │ Restart the countdown             │
//	│ POST   │ /alarms/{id}/dismiss │ Stop ringing for good             │
//	└────────┴──────────────────────┴───────────────────────────────────┘
//
// Sound Endpoints (sounds.go), all answering 202 with the queued item:
//
//	┌────────┬──────────┬─────────────────────────────────────────────┐
//	│ Method │ Endpoint │ Description                                 │
//	├────────┼──────────┼─────────────────────────────────────────────┤
//	│ POST   │ /say     │ Speak a text (priority 100)                 │
//	│ POST   │ /play    │ Play a clip (priority 110)                  │
//	│ POST   │ /record  │ Record for a duration (priority 90)         │
//	└────────┴──────────┴─────────────────────────────────────────────┘
//
// Funnel Endpoints (funnel.go):
//
//	┌────────┬──────────────────────┬───────────────────────────────────┐
//	│ Method │ Endpoint             │ Description                       │
//	├────────┼──────────────────────┼───────────────────────────────────┤
//	│ GET    │ /funnel              │ Running sound and queue           │
//	│ DELETE │ /funnel/items/{id}   │ Drop a queued sound               │
//	└────────┴──────────────────────┴───────────────────────────────────┘
//
// # Alarm Handler
//
// POST /alarms - Creates an alarm:
//
// Request:
//
//	{ "name": "tea", "duration": "4m", "clip": "chime" }
//
// Response (201):
//
//	{
//	    "id": "uuid",
//	    "name": "tea",
//	    "clip": "chime",
//	    "duration": "4m0s",
//	    "remaining": "4m0s",
//	    "state": "counting",
//	    "rings": 0,
//	    "createdAt": "2026-01-01T07:00:00Z"
//	}
//
// # Error Handling
//
// Handlers use consistent error response format:
//
//	{ "error": "error message" }
//
// HTTP Status Code Mapping:
//
//	┌─────────────────────────────┬────────┬──────────────────────────────┐
//	│ Error Type                  │ Status │ When                         │
//	├─────────────────────────────┼────────┼──────────────────────────────┤
//	│ Validation error            │ 400    │ Invalid request body or id   │
//	│ ResourceNotFoundError       │ 404    │ Alarm or item doesn't exist  │
//	│ InvalidStateError           │ 409    │ e.g. pausing a ringing alarm │
//	│ funnel.ErrQueueFull         │ 429    │ Too many sounds queued       │
//	│ funnel.ErrClosed            │ 503    │ Shutting down                │
//	│ Internal error              │ 500    │ Unexpected service errors    │
//	└─────────────────────────────┴────────┴──────────────────────────────┘
package handlers
