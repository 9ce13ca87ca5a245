package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/numerology/internal/presentation/tui"
	"github.com/aretw0/numerology/pkg/calendar"
	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/presenter"
	"github.com/aretw0/numerology/pkg/validation"
)

// CalcOptions holds one form and how to print its result.
type CalcOptions struct {
	Input validation.Input
	Mode  string
	JSON  bool
}

// Calculate validates the form, derives the numbers and prints them. A
// rejected form comes back as the user-facing message.
func Calculate(ctx context.Context, app *App, opts CalcOptions, out io.Writer) error {
	mode := app.DisplayMode()
	if opts.Mode != "" {
		m, err := domain.ParseMode(opts.Mode)
		if err != nil {
			return err
		}
		mode = m
	}

	result, err := app.Engine.Calculate(ctx, opts.Input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return errors.New(ve.Message)
		}
		return err
	}
	view := app.Engine.Present(result, mode)

	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	return printMarkdown(out, view)
}

// Describe prints the card for one number of one kind.
func Describe(app *App, kindName string, n int, modeName string, out io.Writer) error {
	kind, err := domain.ParseKind(kindName)
	if err != nil {
		return err
	}
	mode := app.DisplayMode()
	if modeName != "" {
		if mode, err = domain.ParseMode(modeName); err != nil {
			return err
		}
	}
	card, err := presenter.Describe(app.Engine.Catalog(), kind, n, mode)
	if err != nil {
		return err
	}
	return printMarkdown(out, presenter.View{Mode: mode, Cards: []presenter.Card{card}})
}

func printMarkdown(out io.Writer, view presenter.View) error {
	text := presenter.Markdown(view)
	if render := tui.RendererFor(fileOf(out)); render != nil {
		if rendered, err := render(text); err == nil {
			text = rendered
		}
	}
	_, err := fmt.Fprintln(out, strings.TrimRight(text, "\n"))
	return err
}

// PrintDays writes the selectable days of year/month, one line, space
// separated. Zero values fall back as calendar.DayOptions describes.
func PrintDays(out io.Writer, now time.Time, year, month int) error {
	if month < 0 || month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	days := calendar.DayOptions(now, year, month)
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = fmt.Sprint(d)
	}
	_, err := fmt.Fprintln(out, strings.Join(parts, " "))
	return err
}
