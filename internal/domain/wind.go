package domain

import "math"

// CardinalLabels are the sixteen compass-point labels, clockwise from north.
var CardinalLabels = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// WindSpeed returns the scalar wind speed for the eastward (u) and northward
// (v) vector components.
func WindSpeed(u, v float64) float64 {
	return math.Sqrt(u*u + v*v)
}

// CardinalDirection maps a wind vector to one of the sixteen compass labels.
// The angle is atan2(u, v) rather than the mathematical atan2(v, u): this puts
// 0° at a wind blowing from the north and advances clockwise, the
// meteorological convention. Each label covers a 22.5° sector centred on its
// heading.
//
// The zero vector has no direction; atan2(0, 0) is 0 in Go, so calm air maps
// to "N". Callers that care should gate on wind speed first.
func CardinalDirection(u, v float64) string {
	deg := math.Atan2(u, v) * 180 / math.Pi
	deg = math.Mod(deg+360, 360)

	sector := int(math.Round(deg/22.5)) % 16
	return CardinalLabels[sector]
}
