package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestParseWind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		want  Wind
	}{
		{"18012KT", Wind{Direction: "180", Speed: 12}},
		{"18012G20KT", Wind{Direction: "180", Speed: 12, Gust: ptr.To(20)}},
		{"VRB03KT", Wind{Direction: "VRB", Speed: 3}},
		{"270105G120KT", Wind{Direction: "270", Speed: 105, Gust: ptr.To(120)}},
		{"00000KT", Wind{Direction: "000", Speed: 0}},
	}

	for _, tt := range tests {
		m := matchToken(tt.token)
		assert.Equal(t, FieldWind, m.Kind, tt.token)
		assert.Equal(t, tt.want, m.Wind, tt.token)
	}
}

func TestParseWind_roundTrip(t *testing.T) {
	t.Parallel()

	for _, dir := range []int{0, 90, 180, 360} {
		for _, spd := range []int{5, 12, 99} {
			token := fmt.Sprintf("%03d%02dKT", dir, spd)
			w := parseWind(token)
			assert.Equal(t, fmt.Sprintf("%03d", dir), w.Direction, token)
			assert.Equal(t, spd, w.Speed, token)
			assert.Nil(t, w.Gust, token)

			gusty := fmt.Sprintf("%03d%02dG%02dKT", dir, spd, spd+10)
			w = parseWind(gusty)
			assert.Equal(t, fmt.Sprintf("%03d", dir), w.Direction, gusty)
			assert.Equal(t, spd, w.Speed, gusty)
			assert.Equal(t, ptr.To(spd+10), w.Gust, gusty)
		}
	}
}

func TestParseVisibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		raw   string
		miles float64
	}{
		{"1 1/2SM", "1 1/2", 1.5},
		{"3/4SM", "3/4", 0.75},
		{"10SM", "10", 10.0},
		{"1/16SM", "1/16", 0.0625},
		{"2 3/4SM", "2 3/4", 2.75},
		{"1/99999999999999999999SM", "1/99999999999999999999", 1e-20},
	}

	for _, tt := range tests {
		vis, err := parseVisibility(tt.token)
		require.NoError(t, err, tt.token)
		assert.Equal(t, tt.raw, vis.Raw, tt.token)
		require.NotNil(t, vis.Miles, tt.token)
		assert.Equal(t, tt.miles, *vis.Miles, tt.token)
	}
}

func TestParseVisibility_zeroDenominator(t *testing.T) {
	t.Parallel()

	vis, err := parseVisibility("3/0SM")
	require.ErrorIs(t, err, ErrUnparseableSubfield)
	assert.Equal(t, "3/0", vis.Raw)
	assert.Nil(t, vis.Miles)
}

func TestParseCloud(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SkyLayer{Cover: "BKN", BaseFt: ptr.To(2500)}, parseCloud("BKN025"))
	assert.Equal(t, SkyLayer{Cover: "OVC", BaseFt: ptr.To(0)}, parseCloud("OVC000"))
	assert.Equal(t, SkyLayer{Cover: "CLR"}, parseCloud("CLR"))
	assert.Equal(t, SkyLayer{Cover: "SKC"}, parseCloud("SKC"))
	assert.Equal(t, SkyLayer{}, parseCloud("BKN25"))
}

func TestParseTemperature(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		want  TempDew
	}{
		{"M05/M10", TempDew{Temp: -5, Dew: -10}},
		{"21/16", TempDew{Temp: 21, Dew: 16}},
		{"4/M1", TempDew{Temp: 4, Dew: -1}},
		{"M00/M00", TempDew{Temp: 0, Dew: 0}},
	}

	for _, tt := range tests {
		td, err := parseTemperature(tt.token)
		require.NoError(t, err, tt.token)
		assert.Equal(t, tt.want, td, tt.token)
	}
}

func TestParseAltimeter(t *testing.T) {
	t.Parallel()

	alt, err := parseAltimeter("A2992")
	require.NoError(t, err)
	assert.Equal(t, 29.92, alt)

	alt, err = parseAltimeter("A3005")
	require.NoError(t, err)
	assert.Equal(t, 30.05, alt)

	_, err = parseAltimeter("A299")
	assert.ErrorIs(t, err, ErrUnparseableSubfield)
}

func TestParsePreciseTemperature(t *testing.T) {
	t.Parallel()

	td, ok := parsePreciseTemperature("T00640033")
	require.True(t, ok)
	assert.InDelta(t, 6.4, td.Temp, 1e-9)
	assert.InDelta(t, 3.3, td.Dew, 1e-9)

	td, ok = parsePreciseTemperature("T10501061")
	require.True(t, ok)
	assert.InDelta(t, -5.0, td.Temp, 1e-9)
	assert.InDelta(t, -6.1, td.Dew, 1e-9)

	_, ok = parsePreciseTemperature("T0064003")
	assert.False(t, ok)
}

func TestMatchToken_priorityAndMisses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		kind  FieldKind
	}{
		{"18012KT", FieldWind},
		{"10SM", FieldVisibility},
		{"FEW010", FieldSky},
		{"21/16", FieldTemperature},
		{"A2992", FieldAltimeter},
		// recognized only in remarks
		{"T00640033", FieldNone},
		{"-RA", FieldNone},
		{"VV003", FieldNone},
		{"Q1013", FieldNone},
		{"A29921", FieldNone},
		{"P6SM", FieldNone},
		{"18012MPS", FieldNone},
		{"RMK", FieldNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, matchToken(tt.token).Kind, tt.token)
	}
}

func TestFieldKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "visibility", FieldVisibility.String())
	assert.Equal(t, "precise_temperature", FieldPreciseTemperature.String())
	assert.Equal(t, "unknown", FieldKind(99).String())
}
