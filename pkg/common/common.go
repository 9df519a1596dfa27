package common

import "math"

const (
	PiDiv180 = math.Pi / 180
	OneHalf  = 1.0 / 2.0 // 0.5

	// Gauge face is laid out in a 200x200 unit box centered on the pivot.
	FaceExtent = 200.0

	FaceRadius      = 95.0
	RimRadius       = 92.0
	RimWidth        = 6.0
	GlassRadius     = 90.0
	ArcRadius       = 85.0
	ArcWidth        = 12.0
	ArcTrackWidth   = 18.0
	TickInnerRadius = 85.0
	TickOuterRadius = 95.0
	TickWidth       = 2.0
	LabelRadius     = 70.0
	NeedleLength    = 85.0
	NeedleBase      = 6.0
	PivotRadius     = 8.0

	// Relative tolerance used when comparing derived floating point positions.
	Epsilon = 1e-9
)

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * PiDiv180
}

// Clamp01 limits v to [0,1], NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v >= 0:
		return v
	}
	return 0
}

// Clamp limits v to [lo,hi], NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	switch {
	case v > hi:
		return hi
	case v >= lo:
		return v
	}
	return lo
}
