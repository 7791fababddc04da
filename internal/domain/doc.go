// Package domain models Windy point-forecast data and the merge of the two
// upstream model runs into a single surf forecast series.
//
// # Data Source
//
// Forecast data comes from the Windy Point Forecast API v2
// (https://api.windy.com/api/point-forecast/v2). One request is made per
// forecast model: the wave model (gfsWave) supplies sea-state parameters and
// the weather model (gfs) supplies wind and atmospheric parameters. The two
// responses are fetched independently and may fail independently; the merge
// tolerates either or both being absent.
//
// # Windy Response Conventions
//
// Each response is a flat JSON object:
//
//	"ts"     — ordered array of epoch-millisecond timestamps
//	"units"  — map of parameter key to unit label, e.g. "waves_height-surface": "m"
//	remaining keys — per-parameter value arrays, index-aligned to "ts"
//
// Parameter keys follow the "<param>_<measurement>-<level>" convention:
//
//	waves_height-surface, waves_period-surface, waves_direction-surface
//	wwaves_* and swell1_* for wind waves and primary swell
//	wind_u-surface, wind_v-surface — eastward/northward wind vector components
//	gust-surface, temp-surface, past3hprecip-surface, ptype-surface
//
// Value arrays may be shorter than "ts" and individual entries may be null;
// both are treated as "not reported", which is distinct from a reported zero.
//
// # Merge Policy
//
// The wave model's timestamp axis is canonical when valid, falling back to the
// wind axis. When the two axes differ, wind values are located by timestamp
// value, never interpolated; a timestamp present only on the canonical axis
// simply carries no wind fields. All degradations are recorded as warnings and
// the merge only fails outright when no usable timestamp axis exists at all.
//
// # Derived Quantities
//
// Scalar wind speed is the Euclidean norm of (u, v). The cardinal direction
// uses the meteorological convention: atan2(u, v) puts 0° at "wind from the
// north" and the 360° circle is divided into sixteen 22.5° sectors. See
// [WindSpeed] and [CardinalDirection].
package domain
