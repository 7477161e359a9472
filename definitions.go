package main

import (
	"errors"
	"fmt"
	"regexp"
)

// Sky cover codes that can form a ceiling
var ceilingCovers = map[string]bool{
	"BKN": true,
	"OVC": true,
}

// Common cloud coverage mapping
var cloudCoverage = map[string]string{
	"SKC": "sky clear",
	"CLR": "clear",
	"FEW": "few clouds",
	"SCT": "scattered clouds",
	"BKN": "broken clouds",
	"OVC": "overcast",
}

const (
	autoMarker    = "AUTO"
	remarksMarker = "RMK"
	commentPrefix = "#"

	// date, time, station, DDHHMMZ
	headerTokens = 4
)

// Token patterns, matched against a single whitespace-delimited group
var (
	windRegex        = regexp.MustCompile(`^(VRB|\d{3})(\d{2,3})(?:G(\d{2,3}))?KT$`)
	visRegex         = regexp.MustCompile(`^(?:(\d+) )?(\d+/\d+|\d+)SM$`)
	visFractionRegex = regexp.MustCompile(`^\d+/\d+SM$`)
	visWholeRegex    = regexp.MustCompile(`^\d+$`)
	cloudRegex       = regexp.MustCompile(`^(FEW|SCT|BKN|OVC|CLR|SKC)(\d{3})?$`)
	tempRegex        = regexp.MustCompile(`^(M?)(\d{1,2})/(M?)(\d{1,2})$`)
	pressureRegex    = regexp.MustCompile(`^A(\d{2})(\d{2})$`)
	tempPreciseRegex = regexp.MustCompile(`^T([01])(\d{3})([01])(\d{3})$`)
)

var (
	// ErrMalformedLine is returned when a line lacks the four header tokens
	ErrMalformedLine = errors.New("malformed line")
	// ErrUnparseableSubfield marks a token that looked like a group but could not be converted
	ErrUnparseableSubfield = errors.New("unparseable subfield")
)

// SourceReadError wraps a failure of the underlying line source
type SourceReadError struct {
	Line int
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read source after line %d: %v", e.Line, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// FieldKind identifies which group a token was classified as
type FieldKind int

const (
	FieldNone FieldKind = iota
	FieldWind
	FieldVisibility
	FieldSky
	FieldTemperature
	FieldAltimeter
	FieldPreciseTemperature
)

var fieldKindNames = map[FieldKind]string{
	FieldNone:               "none",
	FieldWind:               "wind",
	FieldVisibility:         "visibility",
	FieldSky:                "sky",
	FieldTemperature:        "temperature",
	FieldAltimeter:          "altimeter",
	FieldPreciseTemperature: "precise_temperature",
}

func (k FieldKind) String() string {
	if name, ok := fieldKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Wind represents the surface wind group
type Wind struct {
	Direction string // three digit heading or VRB
	Speed     int
	Gust      *int
}

// Visibility represents prevailing visibility in statute miles
type Visibility struct {
	Raw   string   // text before the SM suffix, e.g. "1 1/2"
	Miles *float64 // nil when the value could not be reduced
}

// SkyLayer represents one sky cover group
type SkyLayer struct {
	Cover  string `json:"cov"`
	BaseFt *int   `json:"base_ft"`
}

// TempDew represents a temperature/dew point pair in degrees Celsius
type TempDew struct {
	Temp float64
	Dew  float64
}

// Match is the result of classifying one token
type Match struct {
	Kind       FieldKind
	Wind       Wind
	Visibility Visibility
	Sky        SkyLayer
	TempDew    TempDew
	Altimeter  float64
	Err        error // set with ErrUnparseableSubfield when conversion failed
}

// Observation represents one decoded report line
type Observation struct {
	Date    string
	Time    string
	Station string
	DDHHMMZ string
	IsAuto  bool

	WindDir       *string
	WindSpeedKt   *int
	WindGustKt    *int
	VisibilityRaw *string
	VisibilitySM  *float64
	SkyLayers     []SkyLayer
	CeilingFt     *int
	TempC         *float64
	DewpointC     *float64
	AltimeterInHg *float64
	Remarks       *string
	PreciseTempC  *float64
	PreciseDewC   *float64
}

// TokenObserver receives tokens that resembled a group but failed conversion
type TokenObserver func(token string, kind FieldKind, err error)
