package numerology

import (
	"context"

	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/ports"
	"github.com/aretw0/numerology/pkg/validation"
)

// Controller binds one session to the sinks of one form. Validation failures
// go to the ErrorSink and never surface as Go errors.
type Controller struct {
	engine  *Engine
	session *domain.Session
	errors  ports.ErrorSink
	results ports.ResultSink
}

// NewController creates a Controller. A nil session starts a fresh local one.
func NewController(engine *Engine, sess *domain.Session, errs ports.ErrorSink, results ports.ResultSink) *Controller {
	if sess == nil {
		sess = domain.NewSession("")
	}
	return &Controller{
		engine:  engine,
		session: sess,
		errors:  errs,
		results: results,
	}
}

// Session returns the bound session.
func (c *Controller) Session() *domain.Session {
	return c.session
}

// Submit handles one form submission. It calls either ShowError, or
// ClearError followed by ShowResults, and reports which.
func (c *Controller) Submit(ctx context.Context, in validation.Input) (accepted bool) {
	view, err := c.engine.Submit(ctx, c.session, in)
	if err != nil {
		c.errors.ShowError(ctx, message(err))
		return false
	}
	c.errors.ClearError(ctx)
	c.results.ShowResults(ctx, view)
	return true
}

// SelectMode switches the display mode and re-renders a cached result.
func (c *Controller) SelectMode(ctx context.Context, mode domain.DisplayMode) {
	if view, ok := c.engine.SwitchMode(ctx, c.session, mode); ok {
		c.results.ShowResults(ctx, view)
	}
}

func message(err error) string {
	if ve, ok := domain.AsValidationError(err); ok {
		return ve.Message
	}
	return err.Error()
}
