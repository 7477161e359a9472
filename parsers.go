package main

import (
	"fmt"
	"strconv"
	"strings"

	"k8s.io/utils/ptr"
)

// matchToken classifies a body token, trying each group in priority order
func matchToken(token string) Match {
	if windRegex.MatchString(token) {
		return Match{Kind: FieldWind, Wind: parseWind(token)}
	}

	if visRegex.MatchString(token) {
		vis, err := parseVisibility(token)
		return Match{Kind: FieldVisibility, Visibility: vis, Err: err}
	}

	if cloudRegex.MatchString(token) {
		return Match{Kind: FieldSky, Sky: parseCloud(token)}
	}

	if tempRegex.MatchString(token) {
		td, err := parseTemperature(token)
		return Match{Kind: FieldTemperature, TempDew: td, Err: err}
	}

	if pressureRegex.MatchString(token) {
		alt, err := parseAltimeter(token)
		return Match{Kind: FieldAltimeter, Altimeter: alt, Err: err}
	}

	return Match{Kind: FieldNone}
}

// parseWind parses a wind string in the format "DDDSSKT" or "DDDSSGggKT"
func parseWind(windStr string) Wind {
	matches := windRegex.FindStringSubmatch(windStr)
	if matches == nil {
		return Wind{}
	}

	wind := Wind{Direction: matches[1]}
	wind.Speed, _ = strconv.Atoi(matches[2])
	if matches[3] != "" {
		gust, _ := strconv.Atoi(matches[3])
		wind.Gust = ptr.To(gust)
	}

	return wind
}

// parseVisibility parses "10SM", "3/4SM" or the recombined "1 1/2SM".
// The raw text survives even when the value cannot be reduced.
func parseVisibility(visStr string) (Visibility, error) {
	matches := visRegex.FindStringSubmatch(visStr)
	if matches == nil {
		return Visibility{}, fmt.Errorf("%w: visibility %q", ErrUnparseableSubfield, visStr)
	}

	vis := Visibility{Raw: strings.TrimSuffix(visStr, "SM")}

	miles, err := statuteMiles(matches[1], matches[2])
	if err != nil {
		return vis, fmt.Errorf("%w: visibility %q: %v", ErrUnparseableSubfield, visStr, err)
	}
	vis.Miles = ptr.To(miles)

	return vis, nil
}

// parseCloud parses a cloud string in the format "CCC" or "CCCHHH"
func parseCloud(cloudStr string) SkyLayer {
	matches := cloudRegex.FindStringSubmatch(cloudStr)
	if matches == nil {
		return SkyLayer{}
	}

	layer := SkyLayer{Cover: matches[1]}

	// Only try to parse height if it exists
	if matches[2] != "" {
		height, _ := strconv.Atoi(matches[2])
		layer.BaseFt = ptr.To(height * 100)
	}

	return layer
}

// parseTemperature parses a temperature/dew point group like "21/16" or "M05/M10"
func parseTemperature(tempStr string) (TempDew, error) {
	matches := tempRegex.FindStringSubmatch(tempStr)
	if matches == nil {
		return TempDew{}, fmt.Errorf("%w: temperature %q", ErrUnparseableSubfield, tempStr)
	}

	temp, err := signedCelsius(matches[1], matches[2])
	if err != nil {
		return TempDew{}, fmt.Errorf("%w: temperature %q: %v", ErrUnparseableSubfield, tempStr, err)
	}
	dew, err := signedCelsius(matches[3], matches[4])
	if err != nil {
		return TempDew{}, fmt.Errorf("%w: dew point %q: %v", ErrUnparseableSubfield, tempStr, err)
	}

	return TempDew{Temp: temp, Dew: dew}, nil
}

// parseAltimeter parses "AAAAA" as AA.AA inches of mercury
func parseAltimeter(altStr string) (float64, error) {
	matches := pressureRegex.FindStringSubmatch(altStr)
	if matches == nil {
		return 0, fmt.Errorf("%w: altimeter %q", ErrUnparseableSubfield, altStr)
	}

	inHg, err := strconv.ParseFloat(matches[1]+"."+matches[2], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: altimeter %q: %v", ErrUnparseableSubfield, altStr, err)
	}

	return inHg, nil
}

// parsePreciseTemperature parses the remark group "TsTTTsDDD" in tenths of a degree
func parsePreciseTemperature(part string) (TempDew, bool) {
	matches := tempPreciseRegex.FindStringSubmatch(part)
	if matches == nil {
		return TempDew{}, false
	}

	return TempDew{
		Temp: tenthsCelsius(matches[1], matches[2]),
		Dew:  tenthsCelsius(matches[3], matches[4]),
	}, true
}
