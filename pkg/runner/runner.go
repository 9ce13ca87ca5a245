package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/numerology"
	"github.com/aretw0/numerology/internal/logging"
	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/ports"
	"github.com/google/uuid"
)

// Runner drives one interactive session until the user quits or the input
// ends.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// Store persists the session after every change. If nil, sessions are
	// ephemeral.
	Store ports.SessionStore

	// SessionID resumes a stored session, or names the first new one.
	SessionID string

	// NewID generates IDs for sessions started with :new.
	NewID func() string

	// Mode is the display mode of every session the Runner creates.
	Mode domain.DisplayMode
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithHandler configures the IOHandler.
func WithHandler(h IOHandler) Option {
	return func(r *Runner) {
		r.Handler = h
	}
}

// WithStore configures the SessionStore for persistence.
func WithStore(store ports.SessionStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithSessionID sets the session to resume or create.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithIDGenerator replaces uuid.NewString for new session IDs.
func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		r.NewID = fn
	}
}

// WithMode sets the display mode for new sessions. Resumed sessions keep
// their own.
func WithMode(mode domain.DisplayMode) Option {
	return func(r *Runner) {
		r.Mode = mode
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		Logger: logging.NewNop(),
		NewID:  uuid.NewString,
		Mode:   domain.DefaultMode,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

// Run executes the loop. It returns nil on quit or end of input, and
// ctx.Err() when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, engine *numerology.Engine) error {
	sess, err := r.resolveSession(ctx)
	if err != nil {
		return err
	}
	ctrl := numerology.NewController(engine, sess, r.Handler, r.Handler)

	// A resumed session shows its last result straight away.
	if view, ok := engine.Render(sess); ok {
		r.Handler.ShowResults(ctx, view)
	}

	for {
		req, err := r.Handler.Read(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("input error: %w", err)
		}

		switch req.Kind {
		case RequestQuit:
			return nil

		case RequestNew:
			ctrl = numerology.NewController(engine, r.newSession(), r.Handler, r.Handler)
			r.Handler.ClearError(ctx)
			if err := r.save(ctx, ctrl.Session()); err != nil {
				return err
			}
			if err := r.Handler.SystemOutput(ctx, "Started a new calculation."); err != nil {
				return fmt.Errorf("output error: %w", err)
			}

		case RequestMode:
			ctrl.SelectMode(ctx, req.Mode)
			if err := r.save(ctx, ctrl.Session()); err != nil {
				return err
			}

		case RequestSubmit:
			if ctrl.Submit(ctx, req.Input) {
				if err := r.save(ctx, ctrl.Session()); err != nil {
					return err
				}
			}
		}
	}
}

func (r *Runner) resolveSession(ctx context.Context) (*domain.Session, error) {
	if r.Store == nil || r.SessionID == "" {
		id := r.SessionID
		if id == "" && r.Store != nil {
			id = r.NewID()
		}
		return r.fresh(id), nil
	}

	sess, err := r.Store.Load(ctx, r.SessionID)
	if err == nil {
		r.Logger.Debug("session resumed", "session_id", r.SessionID)
		return sess, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return r.fresh(r.SessionID), nil
}

func (r *Runner) newSession() *domain.Session {
	if r.Store == nil {
		return r.fresh("")
	}
	return r.fresh(r.NewID())
}

func (r *Runner) fresh(id string) *domain.Session {
	sess := domain.NewSession(id)
	sess.Mode = r.Mode
	return sess
}

func (r *Runner) save(ctx context.Context, sess *domain.Session) error {
	if r.Store == nil || sess.ID == "" {
		return nil
	}
	if err := r.Store.Save(ctx, sess.ID, sess); err != nil {
		return fmt.Errorf("critical persistence error: %w", err)
	}
	r.Logger.Debug("session saved", "session_id", sess.ID, "mode", sess.Mode)
	return nil
}
