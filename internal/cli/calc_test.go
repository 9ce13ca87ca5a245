package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/presenter"
	"github.com/aretw0/numerology/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var johnSmithInput = validation.Input{Year: "1990", Month: "7", Day: "15", Name: "JOHN SMITH"}

func TestCalculate_Markdown(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t))

	var out bytes.Buffer
	require.NoError(t, Calculate(context.Background(), app, CalcOptions{Input: johnSmithInput}, &out))
	assert.Contains(t, out.String(), "## Personality Number: 11 (master number)")
	assert.NotContains(t, out.String(), "**Keywords:**")
}

func TestCalculate_JSONDetail(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t))

	var out bytes.Buffer
	require.NoError(t, Calculate(context.Background(), app, CalcOptions{Input: johnSmithInput, Mode: "detail", JSON: true}, &out))

	var view presenter.View
	require.NoError(t, json.Unmarshal(out.Bytes(), &view))
	assert.Equal(t, domain.ModeDetail, view.Mode)
	assert.Equal(t, 4, view.Result.Maturity)
}

func TestCalculate_Rejected(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t))

	in := johnSmithInput
	in.Name = "JOHN3"
	err := Calculate(context.Background(), app, CalcOptions{Input: in}, &bytes.Buffer{})
	assert.EqualError(t, err, validation.MsgNameAlphabet)

	err = Calculate(context.Background(), app, CalcOptions{Input: johnSmithInput, Mode: "loud"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestPrintDays(t *testing.T) {
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	var out bytes.Buffer
	require.NoError(t, PrintDays(&out, now, 2023, 2))
	assert.Equal(t, "1 2 3 4 5 6 7 8 9 10 11 12 13 14 15 16 17 18 19 20 21 22 23 24 25 26 27 28\n", out.String())

	assert.Error(t, PrintDays(&bytes.Buffer{}, now, 2023, 13))
}

func TestDescribe(t *testing.T) {
	app, _ := newTestApp(t, testConfig(t))

	var out bytes.Buffer
	require.NoError(t, Describe(app, "maturity", 33, "", &out))
	assert.Contains(t, out.String(), "## Maturity Number: 33 (master number)")
	assert.Contains(t, out.String(), "**Guidance**")

	assert.ErrorIs(t, Describe(app, "fate", 3, "", &out), domain.ErrUnknownKind)
	assert.ErrorIs(t, Describe(app, "destiny", 10, "", &out), presenter.ErrNoSuchNumber)
}
