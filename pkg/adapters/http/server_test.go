package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/numerology"
	"github.com/aretw0/numerology/pkg/adapters/memory"
	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/presenter"
	"github.com/aretw0/numerology/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

const johnSmith = `{"year":1990,"month":7,"day":15,"name":"JOHN SMITH"}`

func clock() time.Time { return fixedNow }

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	eng, err := numerology.New(numerology.WithClock(clock))
	require.NoError(t, err)
	mgr := session.NewManager(memory.NewStore(), session.WithClock(clock))

	opts = append([]Option{WithClock(clock), WithIDGenerator(func() string { return "sess-1" })}, opts...)
	return NewServer(eng, mgr, opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	info := decode[map[string]string](t, do(t, h, http.MethodGet, "/info", ""))
	assert.Equal(t, "numerology-http", info["app"])
	assert.Equal(t, numerology.Version, info["version"])
}

func TestMetricsMountedOnlyWhenConfigured(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, do(t, newTestServer(t).Handler(), http.MethodGet, "/metrics", "").Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("numerology_calculations_total 0\n"))
	})
	w := do(t, newTestServer(t, WithMetricsHandler(metrics)).Handler(), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "numerology_calculations_total")
}

func TestCalendar(t *testing.T) {
	h := newTestServer(t).Handler()

	years := decode[map[string][]int](t, do(t, h, http.MethodGet, "/calendar/years", ""))["years"]
	require.NotEmpty(t, years)
	assert.Equal(t, 2026, years[0])
	assert.Equal(t, 1900, years[len(years)-1])

	days := decode[map[string][]int](t, do(t, h, http.MethodGet, "/calendar/days?year=2024&month=2", ""))["days"]
	assert.Len(t, days, 29)

	days = decode[map[string][]int](t, do(t, h, http.MethodGet, "/calendar/days", ""))["days"]
	assert.Len(t, days, 31, "unset month falls back to January")

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/calendar/days?month=13", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/calendar/days?year=abc", "").Code)
}

func TestCalculate(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, http.MethodPost, "/calculate", johnSmith)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decode[presenter.View](t, w)
	assert.Equal(t, domain.ModeBrief, view.Mode)
	assert.Equal(t, domain.ResultSet{LifePath: 5, Destiny: 8, Soul: 6, Personality: 11, Birthday: 6, Maturity: 4}, view.Result)
	assert.Len(t, view.Cards, 6)

	w = do(t, h, http.MethodPost, "/calculate", `{"year":"1990","month":"7","day":"15","name":"JOHN SMITH","mode":"detail"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ModeDetail, decode[presenter.View](t, w).Mode)
}

func TestCalculate_Errors(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{"malformed", `{"year":`, http.StatusBadRequest, ""},
		{"bad mode", `{"year":1990,"month":7,"day":15,"name":"JOHN SMITH","mode":"loud"}`, http.StatusBadRequest, "mode"},
		{"short name", `{"year":1990,"month":7,"day":15,"name":"J"}`, http.StatusUnprocessableEntity, "name"},
		{"missing day", `{"year":1990,"month":7,"name":"JOHN SMITH"}`, http.StatusUnprocessableEntity, "date"},
		{"future", `{"year":2030,"month":1,"day":1,"name":"JOHN SMITH"}`, http.StatusUnprocessableEntity, "date"},
		{"far future", `{"year":300000000000,"month":1,"day":1,"name":"Anna Lee"}`, http.StatusUnprocessableEntity, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/calculate", tt.body)
			assert.Equal(t, tt.status, w.Code)
			resp := decode[errorResponse](t, w)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.field, resp.Field)
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	h := newTestServer(t).Handler()

	w := do(t, h, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[SessionResponse](t, w)
	assert.Equal(t, "sess-1", created.ID)
	assert.Equal(t, domain.ModeBrief, created.Mode)
	assert.Nil(t, created.View)

	// Switching mode before any result just records the mode.
	w = do(t, h, http.MethodPut, "/sessions/sess-1/mode", `{"mode":"detail"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[SessionResponse](t, w).View)

	w = do(t, h, http.MethodPost, "/sessions/sess-1/calculate", johnSmith)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[SessionResponse](t, w)
	require.NotNil(t, resp.View)
	assert.Equal(t, domain.ModeDetail, resp.View.Mode)
	assert.Equal(t, 8, resp.View.Result.Destiny)

	// A rejected form keeps the previous result.
	w = do(t, h, http.MethodPost, "/sessions/sess-1/calculate", `{"year":1990,"month":7,"day":15,"name":"JOHN  SMITH"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPut, "/sessions/sess-1/mode", `{"mode":"brief"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[SessionResponse](t, w)
	require.NotNil(t, resp.View)
	assert.Equal(t, domain.ModeBrief, resp.View.Mode)
	assert.Equal(t, 11, resp.View.Result.Personality)

	got := decode[SessionResponse](t, do(t, h, http.MethodGet, "/sessions/sess-1", ""))
	assert.Equal(t, resp, got)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/sessions/sess-1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/sessions/sess-1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/sessions/sess-1", "").Code)
}

func TestSession_UnknownAndBadInput(t *testing.T) {
	h := newTestServer(t).Handler()

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/sessions/nope/calculate", johnSmith).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/sessions/nope/mode", `{"mode":"brief"}`).Code)

	do(t, h, http.MethodPost, "/sessions", "")
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/sessions/sess-1/mode", `{"mode":"loud"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/sessions/sess-1/mode", `nope`).Code)
}

func TestCORSPreflight(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), http.MethodOptions, "/calculate", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents_Session(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	_, err := srv.Sessions.Create(context.Background(), "sess-1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/sessions/sess-1/events", nil)
	require.NoError(t, err)
	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	lines := bufio.NewScanner(res.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	require.Eventually(t, func() bool { return srv.Streams.Subscribers("sess-1") == 1 }, time.Second, 10*time.Millisecond)

	post, err := ts.Client().Post(ts.URL+"/sessions/sess-1/calculate", "application/json", bytes.NewBufferString(johnSmith))
	require.NoError(t, err)
	post.Body.Close()
	require.Equal(t, http.StatusOK, post.StatusCode)

	var data string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "data: {") {
			data = strings.TrimPrefix(lines.Text(), "data: ")
			break
		}
	}
	var pushed SessionResponse
	require.NoError(t, json.Unmarshal([]byte(data), &pushed))
	require.NotNil(t, pushed.View)
	assert.Equal(t, 5, pushed.View.Result.LifePath)
}

func TestSubscribeEvents_UnknownSession(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), http.MethodGet, "/sessions/nope/events", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamManager_DropsWhenFull(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s")

	for range 20 {
		sm.Broadcast("s", "x")
	}
	assert.Len(t, ch, 10)

	cancel()
	cancel()
	assert.Zero(t, sm.Subscribers("s"))
}
