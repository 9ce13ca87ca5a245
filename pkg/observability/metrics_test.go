package observability_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m, err := observability.NewMetrics(nil)
	require.NoError(t, err)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnCalculated(ctx, &domain.CalculationEvent{
		Result: domain.ResultSet{LifePath: 5, Destiny: 8, Soul: 6, Personality: 11, Birthday: 6, Maturity: 4},
	})
	hooks.OnRejected(ctx, &domain.RejectionEvent{Field: "name"})
	hooks.OnRejected(ctx, &domain.RejectionEvent{Field: "name"})
	hooks.OnModeSwitch(ctx, &domain.ModeEvent{To: domain.ModeDetail, Rerendered: true})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "numerology_calculations_total 1")
	assert.Contains(t, string(body), `numerology_numbers_total{kind="personality",number="11"} 1`)
	assert.Contains(t, string(body), `numerology_rejections_total{field="name"} 2`)
	assert.Contains(t, string(body), `numerology_mode_switches_total{mode="detail",rerendered="true"} 1`)
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)

	count, err := testutil.GatherAndCount(reg, "numerology_calculations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := observability.LoggingHooks(slog.New(slog.NewTextHandler(&buf, nil)))

	hooks.OnRejected(context.Background(), &domain.RejectionEvent{
		EventBase: domain.EventBase{SessionID: "s1"},
		Field:     "date",
		Message:   "future",
	})

	assert.Contains(t, buf.String(), "msg=rejected")
	assert.Contains(t, buf.String(), "session_id=s1")
	assert.Contains(t, buf.String(), "field=date")
}
