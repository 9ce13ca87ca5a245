package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/ports"
	"github.com/aretw0/numerology/pkg/validation"
)

// RequestKind tells the Runner what the user asked for.
type RequestKind int

const (
	// RequestSubmit carries a filled form in Request.Input.
	RequestSubmit RequestKind = iota
	// RequestMode carries a display mode in Request.Mode.
	RequestMode
	// RequestNew discards the current session and starts a fresh one.
	RequestNew
	// RequestQuit ends the loop.
	RequestQuit
)

// Request is one unit of user intent read by an IOHandler.
type Request struct {
	Kind  RequestKind
	Input validation.Input
	Mode  domain.DisplayMode
}

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
// Error and result display follow the ports.ErrorSink and ports.ResultSink
// contracts.
type IOHandler interface {
	ports.ErrorSink
	ports.ResultSink

	// Read blocks until the user sends the next request.
	// It returns io.EOF when the input stream ends.
	Read(ctx context.Context) (Request, error)

	// SystemOutput presents a meta-message to the user (e.g. session changes).
	// This is distinct from result rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// Commands understood by the text handler at any prompt.
const (
	CommandBrief  = ":brief"
	CommandDetail = ":detail"
	CommandNew    = ":new"
	CommandQuit   = ":quit"
)

// parseCommand recognises a command line. ok is false for ordinary input.
func parseCommand(line string) (req Request, ok bool, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return Request{}, false, nil
	}
	switch strings.ToLower(line) {
	case CommandBrief:
		return Request{Kind: RequestMode, Mode: domain.ModeBrief}, true, nil
	case CommandDetail:
		return Request{Kind: RequestMode, Mode: domain.ModeDetail}, true, nil
	case CommandNew:
		return Request{Kind: RequestNew}, true, nil
	case CommandQuit, ":q", ":exit":
		return Request{Kind: RequestQuit}, true, nil
	}
	return Request{}, true, fmt.Errorf("unknown command %q (try %s, %s, %s or %s)",
		line, CommandBrief, CommandDetail, CommandNew, CommandQuit)
}
