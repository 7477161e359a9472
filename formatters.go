package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Color definitions using fatih/color
var (
	labelColor    = color.New(color.FgCyan)
	valueColor    = color.New(color.FgWhite)
	dateColor     = color.New(color.FgGreen)
	sectionColor  = color.New(color.FgBlue)
	numberColor   = color.New(color.FgGreen)
	remarkColor   = color.New(color.FgGreen)
	functionColor = color.New(color.FgMagenta)
	missingColor  = color.New(color.FgYellow)
)

// formatVisibility renders the raw visibility and its decimal value
func formatVisibility(o Observation) string {
	if o.VisibilityRaw == nil {
		return ""
	}

	raw := *o.VisibilityRaw
	if o.VisibilitySM == nil {
		return raw + " statute miles (" + missingColor.Sprint("unreadable") + ")"
	}

	unit := "statute miles"
	if *o.VisibilitySM == 1 {
		unit = "statute mile"
	}
	if strings.Contains(raw, "/") {
		return fmt.Sprintf("%s %s (%s)", raw, unit, numberColor.Sprintf("%.2f", *o.VisibilitySM))
	}
	return fmt.Sprintf("%s %s", raw, unit)
}

// formatWind converts wind fields to a human-readable format
func formatWind(o Observation) string {
	if o.WindDir == nil || o.WindSpeedKt == nil {
		return ""
	}

	var sb strings.Builder
	if *o.WindSpeedKt == 0 {
		return "Calm"
	}

	if *o.WindDir == "VRB" {
		sb.WriteString("Variable")
	} else {
		sb.WriteString("From " + *o.WindDir + "°")
	}
	sb.WriteString(" at ")
	numberColor.Fprintf(&sb, "%d", *o.WindSpeedKt)
	sb.WriteString(" knots")

	if o.WindGustKt != nil {
		sb.WriteString(", gusting to ")
		numberColor.Fprintf(&sb, "%d", *o.WindGustKt)
		sb.WriteString(" knots")
	}

	return sb.String()
}

// formatClouds converts sky layers to a human-readable format
func formatClouds(layers []SkyLayer) string {
	var parts []string
	for _, layer := range layers {
		desc, ok := cloudCoverage[layer.Cover]
		if !ok {
			desc = layer.Cover
		}
		if layer.BaseFt != nil {
			desc += " at " + formatNumberWithCommas(*layer.BaseFt) + " feet"
		}
		parts = append(parts, desc)
	}
	return strings.Join(parts, ", ")
}

// FormatObservation formats a decoded observation for display
func FormatObservation(o Observation) string {
	var sb strings.Builder

	// Station
	labelColor.Fprint(&sb, "Station: ")
	sb.WriteString(o.Station)
	if o.IsAuto {
		sb.WriteString(" (automated observation)")
	}
	sb.WriteString("\n")

	// Time
	labelColor.Fprint(&sb, "Time: ")
	dateColor.Fprint(&sb, o.Date+" "+o.Time)
	sb.WriteString(" [" + o.DDHHMMZ + "]\n")

	if wind := formatWind(o); wind != "" {
		labelColor.Fprint(&sb, "Wind: ")
		sb.WriteString(wind + "\n")
	}

	if vis := formatVisibility(o); vis != "" {
		labelColor.Fprint(&sb, "Visibility: ")
		sb.WriteString(vis + "\n")
	}

	if len(o.SkyLayers) > 0 {
		labelColor.Fprint(&sb, "Clouds: ")
		sb.WriteString(capitalizeFirst(formatClouds(o.SkyLayers)) + "\n")
	}

	if o.CeilingFt != nil {
		labelColor.Fprint(&sb, "Ceiling: ")
		numberColor.Fprint(&sb, formatNumberWithCommas(*o.CeilingFt))
		sb.WriteString(" feet\n")
	}

	// Temperature with Fahrenheit conversion
	if o.TempC != nil {
		labelColor.Fprint(&sb, "Temperature: ")
		sb.WriteString(fmt.Sprintf("%.0f°C | %.0f°F\n", *o.TempC, CelsiusToFahrenheit(*o.TempC)))
	}
	if o.DewpointC != nil {
		labelColor.Fprint(&sb, "Dew Point: ")
		sb.WriteString(fmt.Sprintf("%.0f°C | %.0f°F\n", *o.DewpointC, CelsiusToFahrenheit(*o.DewpointC)))
	}

	if o.AltimeterInHg != nil {
		labelColor.Fprint(&sb, "Pressure: ")
		sb.WriteString(fmt.Sprintf("%.2f inHg | %.1f hPa\n", *o.AltimeterInHg, InHgToMillibars(*o.AltimeterInHg)))
	}

	if o.PreciseTempC != nil && o.PreciseDewC != nil {
		labelColor.Fprint(&sb, "Precise Temperature: ")
		sb.WriteString(fmt.Sprintf("%.1f°C, dew point %.1f°C\n", *o.PreciseTempC, *o.PreciseDewC))
	}

	if o.Remarks != nil {
		sectionColor.Fprintln(&sb, "Remarks:")
		sb.WriteString("  ")
		remarkColor.Fprint(&sb, *o.Remarks)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatReport formats the batch summary
func FormatReport(r BatchReport) string {
	var sb strings.Builder

	functionColor.Fprintln(&sb, "---- Batch Summary ----")
	labelColor.Fprint(&sb, "Lines: ")
	valueColor.Fprintf(&sb, "%d\n", r.Lines)
	labelColor.Fprint(&sb, "Decoded: ")
	numberColor.Fprintf(&sb, "%d\n", r.Decoded)
	labelColor.Fprint(&sb, "Skipped: ")
	valueColor.Fprintf(&sb, "%d (blank %d, comment %d, malformed %d)\n", r.Skipped(), r.Blank, r.Comments, r.Malformed)
	if r.Unparseable > 0 {
		labelColor.Fprint(&sb, "Unparseable groups: ")
		missingColor.Fprintf(&sb, "%d\n", r.Unparseable)
	}

	return sb.String()
}

// capitalizeFirst capitalizes the first letter of a string
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatNumberWithCommas formats a number with commas as thousand separators
func formatNumberWithCommas(n int) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(char)
	}

	return result.String()
}

// prettySink writes every observation in the colored decoded layout
type prettySink struct {
	w io.Writer
}

func (s prettySink) WriteTable(_ context.Context, t *ObservationTable) error {
	for i, o := range t.Records() {
		if i > 0 {
			if _, err := fmt.Fprintln(s.w); err != nil {
				return err
			}
		}
		functionColor.Fprintf(s.w, "--- Observation %d ---\n", i+1)
		if _, err := fmt.Fprint(s.w, FormatObservation(o)); err != nil {
			return err
		}
	}
	return nil
}
