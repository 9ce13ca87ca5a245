package ports

import (
	"context"

	"github.com/aretw0/numerology/pkg/presenter"
)

// ErrorSink displays validation feedback. At most one message is visible at a
// time; ShowError replaces whatever was shown before.
type ErrorSink interface {
	ShowError(ctx context.Context, msg string)
	ClearError(ctx context.Context)
}

// ResultSink displays the cards of a calculation.
type ResultSink interface {
	ShowResults(ctx context.Context, view presenter.View)
}
