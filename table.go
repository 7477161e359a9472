package main

// ColumnNames lists the table columns in output order
var ColumnNames = []string{
	"date",
	"time",
	"station",
	"ddhhmmZ",
	"is_auto",
	"wind_dir",
	"wind_spd_kt",
	"wind_gst_kt",
	"visibility_raw",
	"visibility_sm",
	"sky_layers",
	"ceiling_ft",
	"temp_c",
	"dewpoint_c",
	"altimeter_inHg",
	"remarks",
	"precise_temp_c",
	"precise_dew_c",
}

// skyLayersColumn is the index of "sky_layers" in ColumnNames
const skyLayersColumn = 10

// Column is one named column of the table; absent values are nil
type Column struct {
	Name   string
	Values []any
}

// ObservationTable holds decoded observations in input order
type ObservationTable struct {
	records []Observation
}

// NewObservationTable creates an empty table
func NewObservationTable() *ObservationTable {
	return &ObservationTable{}
}

// Append adds one observation as the last row
func (t *ObservationTable) Append(o Observation) {
	t.records = append(t.records, o)
}

// Len returns the number of rows
func (t *ObservationTable) Len() int {
	return len(t.records)
}

// Records returns the rows as observations
func (t *ObservationTable) Records() []Observation {
	out := make([]Observation, len(t.records))
	copy(out, t.records)
	return out
}

// Row returns the cells of row i in ColumnNames order
func (t *ObservationTable) Row(i int) []any {
	return t.records[i].cells()
}

// Columns transposes the rows into one column per field
func (t *ObservationTable) Columns() []Column {
	cols := make([]Column, len(ColumnNames))
	for c, name := range ColumnNames {
		cols[c] = Column{Name: name, Values: make([]any, len(t.records))}
	}

	for r, o := range t.records {
		for c, v := range o.cells() {
			cols[c].Values[r] = v
		}
	}

	return cols
}

// cells flattens an observation in ColumnNames order
func (o Observation) cells() []any {
	var layers any
	if len(o.SkyLayers) > 0 {
		layers = append([]SkyLayer(nil), o.SkyLayers...)
	}

	return []any{
		o.Date,
		o.Time,
		o.Station,
		o.DDHHMMZ,
		o.IsAuto,
		deref(o.WindDir),
		deref(o.WindSpeedKt),
		deref(o.WindGustKt),
		deref(o.VisibilityRaw),
		deref(o.VisibilitySM),
		layers,
		deref(o.CeilingFt),
		deref(o.TempC),
		deref(o.DewpointC),
		deref(o.AltimeterInHg),
		deref(o.Remarks),
		deref(o.PreciseTempC),
		deref(o.PreciseDewC),
	}
}

// deref returns the pointed-to value, or an untyped nil for an absent field
func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
