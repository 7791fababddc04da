package domain

import (
	"fmt"
	"slices"
)

// Merge warning strings for source-level problems. Per-point warnings are
// formatted inline with the offending timestamp.
const (
	warnWaveMalformed   = "wave data incomplete or malformed"
	warnWindMalformed   = "wind data incomplete or malformed"
	warnAxisMismatch    = "Timestamps between wave and wind data do not match"
	warnNoTimestampAxis = "Could not determine forecast timestamps"
)

// fieldBinding ties a raw document key to the ForecastPoint field it fills.
type fieldBinding struct {
	key string
	set func(*ForecastPoint, *float64)
}

var waveFieldBindings = []fieldBinding{
	{"waves_height-surface", func(p *ForecastPoint, v *float64) { p.WavesHeight = v }},
	{"waves_period-surface", func(p *ForecastPoint, v *float64) { p.WavesPeriod = v }},
	{"waves_direction-surface", func(p *ForecastPoint, v *float64) { p.WavesDirection = v }},
	{"wwaves_height-surface", func(p *ForecastPoint, v *float64) { p.WindWavesHeight = v }},
	{"wwaves_period-surface", func(p *ForecastPoint, v *float64) { p.WindWavesPeriod = v }},
	{"wwaves_direction-surface", func(p *ForecastPoint, v *float64) { p.WindWavesDirection = v }},
	{"swell1_height-surface", func(p *ForecastPoint, v *float64) { p.SwellHeight = v }},
	{"swell1_period-surface", func(p *ForecastPoint, v *float64) { p.SwellPeriod = v }},
	{"swell1_direction-surface", func(p *ForecastPoint, v *float64) { p.SwellDirection = v }},
}

var windFieldBindings = []fieldBinding{
	{"wind_u-surface", func(p *ForecastPoint, v *float64) { p.WindU = v }},
	{"wind_v-surface", func(p *ForecastPoint, v *float64) { p.WindV = v }},
	{"gust-surface", func(p *ForecastPoint, v *float64) { p.Gust = v }},
	{"temp-surface", func(p *ForecastPoint, v *float64) { p.Temperature = v }},
	{"past3hprecip-surface", func(p *ForecastPoint, v *float64) { p.Precipitation = v }},
	{"ptype-surface", func(p *ForecastPoint, v *float64) { p.PrecipType = v }},
}

// MergeForecast combines up to two model documents into one ForecastSeries.
// Either document may be nil (fetch failure, already reported by the caller
// through warnings) or structurally invalid (reported here). The wave axis is
// canonical when valid, falling back to the wind axis; with neither, the
// result carries zero points and a terminal warning.
//
// The merge never interpolates: wind values for a canonical timestamp are
// looked up by value on the wind axis and simply omitted when absent. Given
// the same two documents it always produces the same series.
func MergeForecast(wave, wind *RawModelDocument, warnings []string) ForecastSeries {
	warnings = slices.Clone(warnings)

	if wave != nil && !wave.Valid() {
		warnings = append(warnings, warnWaveMalformed)
		wave = nil
	}
	if wind != nil && !wind.Valid() {
		warnings = append(warnings, warnWindMalformed)
		wind = nil
	}

	var axis []int64
	switch {
	case wave != nil:
		axis = wave.Timestamps
	case wind != nil:
		axis = wind.Timestamps
	default:
		warnings = append(warnings, warnNoTimestampAxis)
		return ForecastSeries{
			Units:    map[string]string{},
			Forecast: []ForecastPoint{},
			Warnings: warnings,
		}
	}

	axesIdentical := wind != nil && slices.Equal(axis, wind.Timestamps)
	if wave != nil && wind != nil && !axesIdentical {
		warnings = append(warnings, warnAxisMismatch)
	}

	// Value lookup for mismatched axes, first occurrence wins.
	var windIndexByTS map[int64]int
	if wind != nil && !axesIdentical {
		windIndexByTS = make(map[int64]int, len(wind.Timestamps))
		for i, ts := range wind.Timestamps {
			if _, seen := windIndexByTS[ts]; !seen {
				windIndexByTS[ts] = i
			}
		}
	}

	forecast := make([]ForecastPoint, 0, len(axis))
	for i, ts := range axis {
		point := ForecastPoint{
			Timestamp:    ts,
			TimestampISO: EpochMillisToISO(ts),
		}

		if wave != nil {
			warnings = copyFields(wave, waveFieldBindings, i, ts, &point, warnings)
		}

		if wind != nil {
			windIdx, ok := resolveWindIndex(wind, i, ts, axesIdentical, windIndexByTS)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("No wind data for timestamp %d", ts))
			} else {
				warnings = copyFields(wind, windFieldBindings, windIdx, ts, &point, warnings)
				if point.WindU != nil && point.WindV != nil {
					speed := WindSpeed(*point.WindU, *point.WindV)
					point.WindSpeed = &speed
					point.WindDirectionCardinal = CardinalDirection(*point.WindU, *point.WindV)
				} else {
					warnings = append(warnings, fmt.Sprintf("Missing wind components at timestamp %d", ts))
				}
			}
		}

		forecast = append(forecast, point)
	}

	units := make(map[string]string)
	if wave != nil {
		for k, v := range wave.Units {
			units[k] = v
		}
	}
	if wind != nil {
		// Wind units win on key collision.
		for k, v := range wind.Units {
			units[k] = v
		}
	}

	return ForecastSeries{Units: units, Forecast: forecast, Warnings: warnings}
}

// resolveWindIndex finds the wind-axis index holding timestamp ts. The fast
// paths avoid the lookup map when the axes agree at position i.
func resolveWindIndex(wind *RawModelDocument, i int, ts int64, identical bool, byTS map[int64]int) (int, bool) {
	if identical {
		return i, true
	}
	if i < len(wind.Timestamps) && wind.Timestamps[i] == ts {
		return i, true
	}
	idx, ok := byTS[ts]
	return idx, ok
}

// copyFields copies every bound field present at index i into the point.
// A key that is absent from the document is expected sparsity and stays
// silent; a key whose array is too short is a truncated response and is
// warned about. Null entries inside an array count as "not reported".
func copyFields(doc *RawModelDocument, bindings []fieldBinding, i int, ts int64, point *ForecastPoint, warnings []string) []string {
	for _, b := range bindings {
		values, ok := doc.Fields[b.key]
		if !ok {
			continue
		}
		if i >= len(values) {
			warnings = append(warnings, fmt.Sprintf("Missing %s value at timestamp %d", b.key, ts))
			continue
		}
		if values[i] == nil {
			continue
		}
		v := *values[i]
		b.set(point, &v)
	}
	return warnings
}
