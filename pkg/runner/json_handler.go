package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/presenter"
	"github.com/aretw0/numerology/pkg/validation"
)

// JSONHandler implements the IOHandler interface for newline-delimited JSON.
//
// Each input line is a form {"year","month","day","name"} (strings or
// numbers), a mode switch {"mode":"detail"} or a command {"command":"new"}.
// Each output line is {"view":...}, {"error":"..."} or {"system":"..."}.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder

	mu sync.Mutex
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

type jsonOutput struct {
	View   *presenter.View `json:"view,omitempty"`
	Error  string          `json:"error,omitempty"`
	System string          `json:"system,omitempty"`
}

func (h *JSONHandler) emit(out jsonOutput) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(out)
}

// Read returns the next well-formed request. Malformed lines are answered
// with an error line and skipped.
func (h *JSONHandler) Read(ctx context.Context) (Request, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Request{}, err
		}

		text, err := h.Reader.ReadString('\n')
		if err != nil && (err != io.EOF || text == "") {
			return Request{}, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		clean, serr := SanitizeInput(text)
		if serr != nil {
			h.ShowError(ctx, serr.Error())
			continue
		}

		req, perr := parseJSONRequest(clean)
		if perr != nil {
			h.ShowError(ctx, perr.Error())
			continue
		}
		return req, nil
	}
}

func parseJSONRequest(line string) (Request, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Request{}, fmt.Errorf("invalid JSON request: %w", err)
	}

	if m, ok := raw["mode"]; ok {
		s, _ := m.(string)
		mode, err := domain.ParseMode(s)
		if err != nil {
			return Request{}, err
		}
		return Request{Kind: RequestMode, Mode: mode}, nil
	}

	if c, ok := raw["command"]; ok {
		switch c {
		case "new":
			return Request{Kind: RequestNew}, nil
		case "quit":
			return Request{Kind: RequestQuit}, nil
		}
		return Request{}, fmt.Errorf("unknown command %v", c)
	}

	in, err := validation.DecodeInput(raw)
	if err != nil {
		return Request{}, err
	}
	return Request{Kind: RequestSubmit, Input: in}, nil
}

// ShowError emits {"error": msg}.
func (h *JSONHandler) ShowError(ctx context.Context, msg string) {
	_ = h.emit(jsonOutput{Error: msg})
}

// ClearError emits nothing; every line stands on its own.
func (h *JSONHandler) ClearError(ctx context.Context) {}

// ShowResults emits {"view": v}.
func (h *JSONHandler) ShowResults(ctx context.Context, v presenter.View) {
	_ = h.emit(jsonOutput{View: &v})
}

// SystemOutput emits {"system": msg}.
func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.emit(jsonOutput{System: msg})
}
