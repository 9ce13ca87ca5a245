package domain

import "fmt"

// DisplayMode selects how much text accompanies each number.
type DisplayMode string

const (
	// ModeBrief shows a keyword and a one-line description.
	ModeBrief DisplayMode = "brief"
	// ModeDetail shows a longer description, advice and the keyword list.
	ModeDetail DisplayMode = "detail"
)

// DefaultMode is the state every new session starts in.
const DefaultMode = ModeBrief

// ParseMode validates a mode name.
func ParseMode(s string) (DisplayMode, error) {
	switch DisplayMode(s) {
	case ModeBrief, ModeDetail:
		return DisplayMode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
