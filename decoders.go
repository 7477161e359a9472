package main

import (
	"fmt"
	"strings"

	"k8s.io/utils/ptr"
)

// DecodeObservation decodes one raw report line into an Observation
func DecodeObservation(raw string) (Observation, error) {
	return decodeObservation(raw, nil)
}

// decodeObservation decodes a line, reporting tokens whose conversion failed to observe
func decodeObservation(raw string, observe TokenObserver) (Observation, error) {
	parts := strings.Fields(raw)
	if len(parts) < headerTokens {
		return Observation{}, fmt.Errorf("%w: %d of %d header tokens", ErrMalformedLine, len(parts), headerTokens)
	}

	o := Observation{
		Date:    parts[0],
		Time:    parts[1],
		Station: parts[2],
		DDHHMMZ: parts[3],
	}

	i := headerTokens
	if i < len(parts) && parts[i] == autoMarker {
		o.IsAuto = true
		i++
	}

	// Main body runs until RMK or the end of the line
	var tail []string
	for ; i < len(parts); i++ {
		part := parts[i]

		if part == remarksMarker {
			tail = parts[i+1:]
			break
		}

		// Visibility split across two tokens, e.g. "1 1/2SM"
		if visWholeRegex.MatchString(part) && i+1 < len(parts) && visFractionRegex.MatchString(parts[i+1]) {
			part = part + " " + parts[i+1]
			i++
		}

		m := matchToken(part)
		if m.Err != nil && observe != nil {
			observe(part, m.Kind, m.Err)
		}
		o.apply(m)
	}

	o.CeilingFt = ceiling(o.SkyLayers)

	if len(tail) > 0 {
		o.Remarks = ptr.To(strings.Join(tail, " "))
	}

	// Only the first precision group in the remarks counts
	for _, part := range tail {
		if td, ok := parsePreciseTemperature(part); ok {
			o.PreciseTempC = ptr.To(td.Temp)
			o.PreciseDewC = ptr.To(td.Dew)
			break
		}
	}

	return o, nil
}

// apply merges a classified token into the observation
func (o *Observation) apply(m Match) {
	switch m.Kind {
	case FieldWind:
		o.WindDir = ptr.To(m.Wind.Direction)
		o.WindSpeedKt = ptr.To(m.Wind.Speed)
		o.WindGustKt = m.Wind.Gust
	case FieldVisibility:
		o.VisibilityRaw = ptr.To(m.Visibility.Raw)
		o.VisibilitySM = m.Visibility.Miles
	case FieldSky:
		o.SkyLayers = append(o.SkyLayers, m.Sky)
	case FieldTemperature:
		if m.Err != nil {
			return
		}
		o.TempC = ptr.To(m.TempDew.Temp)
		o.DewpointC = ptr.To(m.TempDew.Dew)
	case FieldAltimeter:
		if m.Err != nil {
			return
		}
		o.AltimeterInHg = ptr.To(m.Altimeter)
	}
}

// ceiling returns the lowest BKN or OVC base, or nil when there is none
func ceiling(layers []SkyLayer) *int {
	var lowest *int
	for _, layer := range layers {
		if !ceilingCovers[layer.Cover] || layer.BaseFt == nil {
			continue
		}
		if lowest == nil || *layer.BaseFt < *lowest {
			lowest = ptr.To(*layer.BaseFt)
		}
	}
	return lowest
}
