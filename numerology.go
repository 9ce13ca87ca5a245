package numerology

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/numerology/internal/logging"
	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/presenter"
	"github.com/aretw0/numerology/pkg/refdata"
	"github.com/aretw0/numerology/pkg/validation"
)

// deriveFunc is domain.Derive, swappable so tests can count derivations.
type deriveFunc func(domain.LetterTable, domain.BirthDate, string) domain.ResultSet

// Engine validates input, derives numbers and renders them.
// It holds no per-user state and is safe for concurrent use; per-user state
// lives in a domain.Session passed to each call.
type Engine struct {
	catalog   *refdata.Catalog
	validator *validation.Validator
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
	derive    deriveFunc
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCatalog replaces the embedded reference data. The catalog's letter
// table is used for name sums.
func WithCatalog(c *refdata.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithValidator replaces the default input validator.
func WithValidator(v *validation.Validator) Option {
	return func(e *Engine) {
		e.validator = v
	}
}

// WithClock sets the source of "today" for the default validator and the
// timestamps of lifecycle events.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New initializes an Engine with the embedded catalog unless WithCatalog is
// given.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		logger: logging.NewNop(),
		now:    time.Now,
		derive: domain.Derive,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.catalog == nil {
		c, err := refdata.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load reference data: %w", err)
		}
		eng.catalog = c
	}
	if eng.validator == nil {
		eng.validator = validation.New(validation.WithClock(eng.now))
	}
	return eng, nil
}

// Catalog returns the reference data the engine renders with.
func (e *Engine) Catalog() *refdata.Catalog {
	return e.catalog
}

// Calculate validates in and derives all six numbers. A rejected input is
// returned as a *domain.ValidationError.
func (e *Engine) Calculate(ctx context.Context, in validation.Input) (domain.ResultSet, error) {
	return e.calculate(ctx, "", in)
}

func (e *Engine) calculate(ctx context.Context, sessionID string, in validation.Input) (domain.ResultSet, error) {
	valid, err := e.validator.Validate(in)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			e.logger.Debug("input rejected", "session_id", sessionID, "field", ve.Field, "reason", ve.Message)
			if e.hooks.OnRejected != nil {
				e.hooks.OnRejected(ctx, &domain.RejectionEvent{
					EventBase: e.event(domain.EventRejected, sessionID),
					Field:     ve.Field,
					Message:   ve.Message,
				})
			}
		}
		return domain.ResultSet{}, err
	}

	e.logger.Debug("calculation started", "session_id", sessionID, "date", valid.Date.String())
	result := e.derive(e.catalog.Letters(), valid.Date, valid.Name)
	e.logger.Debug("calculation finished", "session_id", sessionID,
		"life_path", result.LifePath,
		"destiny", result.Destiny,
		"soul", result.Soul,
		"personality", result.Personality,
		"birthday", result.Birthday,
		"maturity", result.Maturity,
	)

	if e.hooks.OnCalculated != nil {
		e.hooks.OnCalculated(ctx, &domain.CalculationEvent{
			EventBase: e.event(domain.EventCalculated, sessionID),
			Result:    result,
		})
	}
	return result, nil
}

// Present renders result in mode without touching any session.
func (e *Engine) Present(result domain.ResultSet, mode domain.DisplayMode) presenter.View {
	return presenter.Present(e.catalog, result, mode)
}

// Submit calculates in and, on success, caches the result in sess and
// returns it rendered in the session's mode. On failure sess is untouched.
func (e *Engine) Submit(ctx context.Context, sess *domain.Session, in validation.Input) (presenter.View, error) {
	result, err := e.calculate(ctx, sess.ID, in)
	if err != nil {
		return presenter.View{}, err
	}
	sess.Store(result)
	sess.UpdatedAt = e.now()
	return e.Present(result, sess.Mode), nil
}

// SwitchMode changes the session's display mode. If a result is cached it is
// re-rendered from the cache and returned with ok set; nothing is derived.
func (e *Engine) SwitchMode(ctx context.Context, sess *domain.Session, mode domain.DisplayMode) (view presenter.View, ok bool) {
	from := sess.Mode
	rerender := sess.SwitchMode(mode)
	sess.UpdatedAt = e.now()

	e.logger.Debug("display mode switched", "session_id", sess.ID, "from", from, "to", mode, "rerender", rerender)
	if e.hooks.OnModeSwitch != nil {
		e.hooks.OnModeSwitch(ctx, &domain.ModeEvent{
			EventBase:  e.event(domain.EventModeSwitch, sess.ID),
			From:       from,
			To:         mode,
			Rerendered: rerender,
		})
	}

	if !rerender {
		return presenter.View{}, false
	}
	return e.Present(*sess.Result, mode), true
}

// Render returns the cached result of sess in its current mode, if any.
func (e *Engine) Render(sess *domain.Session) (presenter.View, bool) {
	if sess.Result == nil {
		return presenter.View{}, false
	}
	return e.Present(*sess.Result, sess.Mode), true
}

func (e *Engine) event(t domain.EventType, sessionID string) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.now(),
		Type:      t,
		SessionID: sessionID,
	}
}
