package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/numerology/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that write one Info line per event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCalculated: func(ctx context.Context, e *domain.CalculationEvent) {
			logger.InfoContext(ctx, "calculated",
				"session_id", e.SessionID,
				"life_path", e.Result.LifePath,
				"destiny", e.Result.Destiny,
			)
		},
		OnRejected: func(ctx context.Context, e *domain.RejectionEvent) {
			logger.InfoContext(ctx, "rejected",
				"session_id", e.SessionID,
				"field", e.Field,
				"reason", e.Message,
			)
		},
		OnModeSwitch: func(ctx context.Context, e *domain.ModeEvent) {
			logger.InfoContext(ctx, "mode_switch",
				"session_id", e.SessionID,
				"from", e.From,
				"to", e.To,
				"rerendered", e.Rerendered,
			)
		},
	}
}
