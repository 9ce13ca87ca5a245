package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCalculated EventType = "calculated"
	EventRejected   EventType = "rejected"
	EventModeSwitch EventType = "mode_switch"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// CalculationEvent is emitted after a successful derivation.
type CalculationEvent struct {
	EventBase
	Result ResultSet `json:"result"`
}

// RejectionEvent is emitted when input fails validation.
type RejectionEvent struct {
	EventBase
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ModeEvent is emitted when the display mode changes.
type ModeEvent struct {
	EventBase
	From       DisplayMode `json:"from"`
	To         DisplayMode `json:"to"`
	Rerendered bool        `json:"rerendered"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnCalculated func(context.Context, *CalculationEvent)
	OnRejected   func(context.Context, *RejectionEvent)
	OnModeSwitch func(context.Context, *ModeEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCalculated: chain(h.OnCalculated, other.OnCalculated),
		OnRejected:   chain(h.OnRejected, other.OnRejected),
		OnModeSwitch: chain(h.OnModeSwitch, other.OnModeSwitch),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
