package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/numerology"
	"github.com/aretw0/numerology/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := numerology.New(numerology.WithClock(func() time.Time {
		return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)
	return NewServer(eng)
}

func TestCalculateNumbers(t *testing.T) {
	s := newTestServer(t)

	view, err := s.handleCalculate(context.Background(), mcp.CallToolRequest{}, map[string]any{
		"year": float64(1990), "month": float64(7), "day": float64(15), "name": "JOHN SMITH", "mode": "detail",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeDetail, view.Mode)
	assert.Equal(t, domain.ResultSet{LifePath: 5, Destiny: 8, Soul: 6, Personality: 11, Birthday: 6, Maturity: 4}, view.Result)
	require.Len(t, view.Cards, 6)
	assert.NotEmpty(t, view.Cards[0].Advice)
}

func TestCalculateNumbers_Rejected(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleCalculate(context.Background(), mcp.CallToolRequest{}, map[string]any{
		"year": float64(1990), "month": float64(7), "day": float64(15), "name": " JOHN",
	})
	require.Error(t, err)
	assert.Equal(t, "Your name cannot start or end with a space.", err.Error())

	_, err = s.handleCalculate(context.Background(), mcp.CallToolRequest{}, map[string]any{
		"year": float64(1990), "month": float64(7), "day": float64(15), "name": "JOHN", "mode": "loud",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestDescribeNumber(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	card, err := s.handleDescribe(ctx, mcp.CallToolRequest{}, map[string]any{"kind": "maturity", "number": float64(33)})
	require.NoError(t, err)
	assert.Equal(t, "Guidance", card.Keyword)
	assert.True(t, card.Master)

	_, err = s.handleDescribe(ctx, mcp.CallToolRequest{}, map[string]any{"kind": "fate", "number": float64(3)})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	_, err = s.handleDescribe(ctx, mcp.CallToolRequest{}, map[string]any{"kind": "destiny", "number": 3.5})
	assert.Error(t, err)

	_, err = s.handleDescribe(ctx, mcp.CallToolRequest{}, map[string]any{"kind": "destiny", "number": float64(0)})
	assert.Error(t, err)
}

func TestLettersResource(t *testing.T) {
	s := newTestServer(t)

	contents, err := s.readLetters(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, LettersURI, text.URI)

	var res LettersResource
	require.NoError(t, json.Unmarshal([]byte(text.Text), &res))
	assert.Len(t, res.Values, 26)
	assert.Equal(t, 1, res.Values["A"])
	assert.Equal(t, 8, res.Values["Z"])
	assert.Equal(t, []string{"A", "E", "I", "O", "U"}, res.Vowels)
}

func TestToolsAreListed(t *testing.T) {
	s := newTestServer(t)

	resp := s.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"calculate_numbers"`)
	assert.Contains(t, string(raw), `"describe_number"`)
}
