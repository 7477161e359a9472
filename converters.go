package main

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// CelsiusToFahrenheit converts temperature from Celsius to Fahrenheit
func CelsiusToFahrenheit(celsius float64) float64 {
	return (celsius * 9 / 5) + 32
}

// InHgToMillibars converts pressure from inches of mercury to millibars (hPa)
func InHgToMillibars(inHg float64) float64 {
	return inHg * 33.8639
}

// statuteMiles adds an optional whole number to a value that is either an
// integer or a "num/den" fraction. Both parts are exact rationals of any width.
func statuteMiles(whole, value string) (float64, error) {
	total := new(big.Rat)

	if whole != "" {
		if _, ok := total.SetString(whole); !ok {
			return 0, fmt.Errorf("invalid whole miles %q", whole)
		}
	}

	part, err := parseFraction(value)
	if err != nil {
		return 0, err
	}
	total.Add(total, part)

	miles, _ := total.Float64()
	return miles, nil
}

// parseFraction parses "3" or "3/4" into a rational number
func parseFraction(s string) (*big.Rat, error) {
	if _, den, ok := strings.Cut(s, "/"); ok && strings.Trim(den, "0") == "" {
		return nil, errors.New("zero denominator")
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid fraction %q", s)
	}
	return r, nil
}

// signedCelsius converts a one or two digit value, negated by an "M" prefix
func signedCelsius(sign, digits string) (float64, error) {
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, err
	}
	if sign == "M" && v != 0 {
		v = -v
	}
	return float64(v), nil
}

// tenthsCelsius converts a three digit tenths value, negated by sign digit "1"
func tenthsCelsius(sign, digits string) float64 {
	v, _ := strconv.Atoi(digits)
	value := float64(v) / 10.0
	if sign == "1" && v != 0 {
		value = -value
	}
	return value
}
