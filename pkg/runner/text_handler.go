package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/numerology/pkg/calendar"
	"github.com/aretw0/numerology/pkg/presenter"
	"github.com/aretw0/numerology/pkg/validation"
)

// ContentRenderer is a function that transforms Markdown before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// TextHandler implements the standard text-based interface: one prompt per
// form field, commands accepted at any prompt.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer

	// ErrorStyle decorates error messages, e.g. with terminal colours.
	ErrorStyle func(string) string

	now       func() time.Time
	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerErrorStyle configures how error messages are decorated.
func WithTextHandlerErrorStyle(style func(string) string) TextHandlerOption {
	return func(h *TextHandler) {
		h.ErrorStyle = style
	}
}

// WithTextHandlerClock sets the clock used for the year range hint.
func WithTextHandlerClock(now func() time.Time) TextHandlerOption {
	return func(h *TextHandler) {
		h.now = now
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so that Read can honour ctx.
func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			close(h.inputChan)
			return
		}
	}
}

// line prompts and returns one line without its line ending. Control
// characters are kept so the name rules can reject them.
func (h *TextHandler) line(ctx context.Context, prompt string) (string, error) {
	h.initPump()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, prompt)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			text := strings.TrimRight(res.text, "\r\n")
			if err := CheckInput(text); err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return text, nil
		}
	}
}

// field reads one form field. A command line ends the form early.
func (h *TextHandler) field(ctx context.Context, prompt string) (value string, cmd *Request, err error) {
	for {
		text, err := h.line(ctx, prompt)
		if err != nil {
			return "", nil, err
		}
		req, isCmd, err := parseCommand(text)
		if err != nil {
			h.ShowError(ctx, err.Error())
			continue
		}
		if isCmd {
			return "", &req, nil
		}
		return text, nil, nil
	}
}

// Read walks the user through year, month, day and name.
func (h *TextHandler) Read(ctx context.Context) (Request, error) {
	years := calendar.Years(h.now())
	var in validation.Input

	steps := []struct {
		dst    *string
		prompt func() string
		trim   bool
	}{
		{&in.Year, func() string {
			return fmt.Sprintf("Year (%d-%d): ", years[len(years)-1], years[0])
		}, true},
		{&in.Month, func() string { return "Month (1-12): " }, true},
		{&in.Day, func() string { return fmt.Sprintf("Day (1-%d): ", h.maxDay(in.Year, in.Month)) }, true},
		{&in.Name, func() string { return "Name: " }, false},
	}

	for _, s := range steps {
		v, cmd, err := h.field(ctx, s.prompt())
		if err != nil {
			return Request{}, err
		}
		if cmd != nil {
			return *cmd, nil
		}
		if s.trim {
			v = strings.TrimSpace(v)
		}
		*s.dst = v
	}
	return Request{Kind: RequestSubmit, Input: in}, nil
}

// maxDay bounds the day hint by the chosen month, or 31 while unknown.
func (h *TextHandler) maxDay(year, month string) int {
	y, errY := strconv.Atoi(year)
	m, errM := strconv.Atoi(month)
	if errY != nil || errM != nil {
		return 31
	}
	if n := calendar.DaysIn(y, m); n > 0 {
		return n
	}
	return 31
}

// ShowError prints the message on its own line.
func (h *TextHandler) ShowError(ctx context.Context, msg string) {
	if h.ErrorStyle != nil {
		msg = h.ErrorStyle(msg)
	}
	fmt.Fprintf(h.Writer, "Error: %s\n", msg)
}

// ClearError is a no-op: printed errors scroll away on their own.
func (h *TextHandler) ClearError(ctx context.Context) {}

// ShowResults prints the view as (optionally rendered) Markdown.
func (h *TextHandler) ShowResults(ctx context.Context, v presenter.View) {
	output := presenter.Markdown(v)
	if h.Renderer != nil {
		if rendered, err := h.Renderer(output); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(h.Writer, strings.TrimSpace(output))
	fmt.Fprintf(h.Writer, "\n(%s, %s, %s or %s)\n", CommandBrief, CommandDetail, CommandNew, CommandQuit)
}

// SystemOutput prints a meta-message with a prefix.
func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "[System] %s\n", msg)
	return err
}
