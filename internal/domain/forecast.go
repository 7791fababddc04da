package domain

import (
	"encoding/json"
	"fmt"
)

// Models and parameter sets requested from the Windy point-forecast API.
// The wave and weather parameters live in different models, which is why the
// merge has to reconcile two independently fetched documents at all.
const (
	DefaultWaveModel = "gfsWave"
	DefaultWindModel = "gfs"
)

// DefaultWaveParameters are requested from the wave model.
var DefaultWaveParameters = []string{"waves", "windWaves", "swell1"}

// DefaultWindParameters are requested from the weather model.
var DefaultWindParameters = []string{"wind", "windGust", "temp", "precip", "ptype"}

// PointRequest identifies one upstream point-forecast call.
type PointRequest struct {
	Model      string
	Parameters []string
	Lat        float64
	Lon        float64
}

// RawModelDocument is the unvalidated result of one upstream call.
// Fields holds every per-parameter value array keyed by the raw
// "<param>_<measurement>-<level>" key, index-aligned to Timestamps.
// A nil entry inside a value array is an upstream null: not reported.
type RawModelDocument struct {
	Timestamps []int64
	Units      map[string]string
	Fields     map[string][]*float64
}

// UnmarshalJSON decodes the flat Windy response shape, splitting the reserved
// "ts" and "units" keys from the per-parameter value arrays.
func (d *RawModelDocument) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return fmt.Errorf("decode model document: %w", err)
	}

	d.Fields = make(map[string][]*float64, len(top))
	for key, raw := range top {
		switch key {
		case "ts":
			if err := json.Unmarshal(raw, &d.Timestamps); err != nil {
				return fmt.Errorf("decode ts: %w", err)
			}
		case "units":
			if err := json.Unmarshal(raw, &d.Units); err != nil {
				return fmt.Errorf("decode units: %w", err)
			}
		case "warning":
			// Windy attaches a free-text warning key on degraded responses;
			// it carries no forecast data.
		default:
			var values []*float64
			if err := json.Unmarshal(raw, &values); err != nil {
				return fmt.Errorf("decode field %q: %w", key, err)
			}
			d.Fields[key] = values
		}
	}
	return nil
}

// Valid reports whether the document carries enough structure to merge:
// a non-empty timestamp axis and a units map.
func (d *RawModelDocument) Valid() bool {
	return d != nil && len(d.Timestamps) > 0 && d.Units != nil
}

// ForecastPoint is one merged, validated time step. Every optional field is a
// pointer so that "not reported" serializes as an omitted key, never as null
// or zero.
type ForecastPoint struct {
	Timestamp    int64  `json:"timestamp" validate:"required"`
	TimestampISO string `json:"timestamp_iso" validate:"required,valid_iso"`

	WavesHeight    *float64 `json:"waves_height-surface,omitempty"`
	WavesPeriod    *float64 `json:"waves_period-surface,omitempty"`
	WavesDirection *float64 `json:"waves_direction-surface,omitempty"`

	WindWavesHeight    *float64 `json:"wwaves_height-surface,omitempty"`
	WindWavesPeriod    *float64 `json:"wwaves_period-surface,omitempty"`
	WindWavesDirection *float64 `json:"wwaves_direction-surface,omitempty"`

	SwellHeight    *float64 `json:"swell1_height-surface,omitempty"`
	SwellPeriod    *float64 `json:"swell1_period-surface,omitempty"`
	SwellDirection *float64 `json:"swell1_direction-surface,omitempty"`

	WindU *float64 `json:"wind_u-surface,omitempty"`
	WindV *float64 `json:"wind_v-surface,omitempty"`

	Gust          *float64 `json:"gust-surface,omitempty"`
	Temperature   *float64 `json:"temp-surface,omitempty"`
	Precipitation *float64 `json:"past3hprecip-surface,omitempty"`
	PrecipType    *float64 `json:"ptype-surface,omitempty"`

	// Derived from (WindU, WindV); present only when both components are.
	WindSpeed             *float64 `json:"wind_speed_surface,omitempty" validate:"omitempty,gte=0"`
	WindDirectionCardinal string   `json:"wind_direction_cardinal,omitempty" validate:"omitempty,valid_cardinal"`
}

// ForecastSeries is the merged result of one wave document and one wind
// document. Warnings accumulate every non-fatal degradation encountered
// during the merge; they are surfaced to logs, not to the wire format.
type ForecastSeries struct {
	Units    map[string]string `json:"units"`
	Forecast []ForecastPoint   `json:"forecast"`
	Warnings []string          `json:"-"`
}
