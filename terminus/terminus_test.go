package terminus

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/icu4x"
	"github.com/wippyai/icu-bridge/native"
	"github.com/wippyai/icu-bridge/runtime"
)

func newLib(t *testing.T) (*icu4x.Lib, *runtime.Runtime) {
	t.Helper()
	ctx := context.Background()
	cfg := runtime.DefaultConfig()
	cfg.Reclaim = runtime.ReclaimManual
	rt, err := runtime.New(ctx, cfg, runtime.WithLogger(zap.NewNop()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(ctx) })

	lib, err := icu4x.New(rt)
	require.NoError(t, err)
	return lib, rt
}

func assertReleased(t *testing.T, rt *runtime.Runtime) {
	t.Helper()
	assert.Equal(t, 0, rt.Tracker().Len())
	assert.Equal(t, 0, rt.Manual().Pending())
	assert.Empty(t, rt.Core().(*native.Core).LiveObjects())
}

func TestCatalog(t *testing.T) {
	var names []string
	for _, term := range Termini() {
		names = append(names, term.Function)
		assert.NotEmpty(t, term.Display)
		assert.NotNil(t, term.run)
		for _, p := range term.Params {
			assert.NotEmpty(t, p.Name)
			if p.TypeUse == UseEnumerator {
				assert.NotEmpty(t, p.Values, "%s.%s", term.Function, p.Name)
			} else {
				assert.Empty(t, p.Values)
			}
		}
	}
	assert.Equal(t, []string{
		"Locale.basename",
		"Locale.normalize",
		"Decimal.toString",
		"DecimalFormatter.format",
		"CaseMapper.lowercase",
		"CaseMapper.uppercase",
		"CaseMapper.fold",
		"WordSegmenter.segment",
	}, names)

	f, ok := Lookup("DecimalFormatter.format")
	require.True(t, ok)
	assert.Equal(t, "DecimalFormatter.format(locale: string, groupingStrategy: DecimalGroupingStrategy, f: f64, magnitude: s16)", f.Signature())
	assert.Equal(t, UseEnumerator, f.Params[1].TypeUse)
	assert.Equal(t, []string{"Auto", "Never", "Always", "Min2"}, f.Params[1].Values)
	assert.Equal(t, UseNumber, f.Params[3].TypeUse)

	_, ok = Lookup("Locale.frobnicate")
	assert.False(t, ok)
}

func TestInvoke(t *testing.T) {
	lib, rt := newLib(t)
	ctx := context.Background()

	tests := []struct {
		function string
		args     []string
		want     string
	}{
		{"Locale.basename", []string{"sr-cyrl-rs"}, "sr-Cyrl-RS"},
		{"Locale.normalize", []string{"EN-us"}, "en-US"},
		{"Decimal.toString", []string{"1234.5", "-1", "Always"}, "+1234.5"},
		{"Decimal.toString", []string{"-0.125", "-2", "Never"}, "0.12"},
		{"DecimalFormatter.format", []string{"de", "Auto", "-1234.5", "-1"}, "-1.234,5"},
		{"DecimalFormatter.format", []string{"hi", "Always", "1234567", "0"}, "12,34,567"},
		{"DecimalFormatter.format", []string{"es", "Min2", "1234", "0"}, "1234"},
		{"CaseMapper.lowercase", []string{"ΑΒΓ", "en"}, "αβγ"},
		{"CaseMapper.uppercase", []string{"istanbul", "tr"}, "İSTANBUL"},
		{"CaseMapper.fold", []string{"HeLLo"}, "hello"},
		{"WordSegmenter.segment", []string{"Hi, 42"}, "0-2 Letter \"Hi\"\n2-3 None \",\"\n3-4 None \" \"\n4-6 Number \"42\""},
		{"WordSegmenter.segment", []string{""}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.function, func(t *testing.T) {
			term, ok := Lookup(tt.function)
			require.True(t, ok)
			got, err := term.Invoke(ctx, lib, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assertReleased(t, rt)
		})
	}
}

func TestInvokeErrors(t *testing.T) {
	lib, rt := newLib(t)
	ctx := context.Background()
	invalidInput := &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindInvalidInput}

	tests := []struct {
		name     string
		function string
		args     []string
		want     error
	}{
		{"argument count", "Locale.basename", nil, invalidInput},
		{"not a number", "Decimal.toString", []string{"abc", "0", "Auto"}, invalidInput},
		{"s16 overflow", "Decimal.toString", []string{"1", "70000", "Auto"}, invalidInput},
		{"unknown variant", "Decimal.toString", []string{"1", "0", "Sometimes"}, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindInvalidEnum}},
		{"bad locale", "Locale.basename", []string{"en-@@"}, icu4x.ErrLocaleParser},
		{"missing data", "DecimalFormatter.format", []string{"sw", "Auto", "1", "0"}, icu4x.ErrDataMissingLocale},
		{"bad locale after mapper", "CaseMapper.uppercase", []string{"x", "en-@@"}, icu4x.ErrLocaleParser},
		{"not finite", "DecimalFormatter.format", []string{"de", "Auto", "NaN", "0"}, icu4x.ErrDecimalLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, ok := Lookup(tt.function)
			require.True(t, ok)
			out, err := term.Invoke(ctx, lib, tt.args...)
			assert.Empty(t, out)
			assert.ErrorIs(t, err, tt.want)
			assertReleased(t, rt)
		})
	}
}

func TestManifestJSON(t *testing.T) {
	b, err := NewManifest().JSON()
	require.NoError(t, err)

	var decoded struct {
		Termini []struct {
			Function string `json:"funcName"`
			Display  string `json:"displayName"`
			Params   []struct {
				Name    string   `json:"name"`
				Type    string   `json:"type"`
				TypeUse string   `json:"typeUse"`
				Values  []string `json:"values"`
			} `json:"parameters"`
		} `json:"termini"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Len(t, decoded.Termini, 8)

	ts := decoded.Termini[2]
	assert.Equal(t, "Decimal.toString", ts.Function)
	require.Len(t, ts.Params, 3)
	assert.Equal(t, "f64", ts.Params[0].Type)
	assert.Equal(t, "number", ts.Params[0].TypeUse)
	assert.Equal(t, "DecimalSignDisplay", ts.Params[2].Type)
	assert.Equal(t, "enumerator", ts.Params[2].TypeUse)
	assert.Contains(t, ts.Params[2].Values, "ExceptZero")
}

func TestSchema(t *testing.T) {
	b, err := Schema()
	require.NoError(t, err)

	var s map[string]any
	require.NoError(t, json.Unmarshal(b, &s))
	assert.Equal(t, "Terminus catalog", s["title"])

	props, ok := s["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "termini")
	assert.Contains(t, string(b), `"typeUse"`)
	assert.Contains(t, string(b), `"enumerator"`)
	assert.NotContains(t, string(b), `"run"`)
}
