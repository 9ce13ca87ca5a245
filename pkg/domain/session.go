package domain

import (
	"slices"
	"time"
)

// Session represents the transient state of one calculator user: the display
// mode and the most recent ResultSet. Each successful calculation overwrites
// Result; nothing older is kept.
type Session struct {
	// ID identifies the session in a store. Empty for local, unstored sessions.
	ID string `json:"id"`

	// Mode is the current presenter state.
	Mode DisplayMode `json:"mode"`

	// Result is the latest calculation, nil until the first success.
	Result *ResultSet `json:"result,omitempty"`

	// UpdatedAt is set by the owner whenever the session changes.
	UpdatedAt time.Time `json:"updated_at"`

	// Sealed is the encrypted form of the whole session, set only on the
	// envelopes an encrypting store writes.
	Sealed []byte `json:"sealed,omitempty"`
}

// NewSession creates a session in the default mode with nothing cached.
func NewSession(id string) *Session {
	return &Session{
		ID:   id,
		Mode: DefaultMode,
	}
}

// Store replaces the cached result.
func (s *Session) Store(r ResultSet) {
	s.Result = &r
}

// SwitchMode moves the presenter to mode and reports whether a cached result
// exists that should be re-rendered.
func (s *Session) SwitchMode(mode DisplayMode) (rerender bool) {
	s.Mode = mode
	return s.Result != nil
}

// Clone returns a deep copy, so stores can hand out values callers may mutate.
func (s *Session) Clone() *Session {
	c := *s
	if s.Result != nil {
		r := *s.Result
		c.Result = &r
	}
	c.Sealed = slices.Clone(s.Sealed)
	return &c
}
