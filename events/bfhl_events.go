// Package events holds the event definitions shared between modules.
package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// OperationDispatchedEvent is emitted after every POST /bfhl request is answered.
type OperationDispatchedEvent struct {
	Operation    string    `json:"operation"` // empty when the key was missing or unrecognized
	Success      bool      `json:"success"`
	Status       int       `json:"status"`
	DurationMs   float64   `json:"duration_ms"` // microsecond resolution
	RequestID    string    `json:"request_id,omitempty"`
	DispatchedAt time.Time `json:"dispatched_at"`
}

// OperationDispatchedV1 is the typed event definition for dispatch results.
// Subject: events.api.v1.operation-dispatched
var OperationDispatchedV1 = helper.EventDefinition[OperationDispatchedEvent](
	"api", "OperationDispatched", "v1",
)
