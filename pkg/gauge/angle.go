package gauge

import (
	"github.com/roffe/txgauge/pkg/common"
	"github.com/roffe/txgauge/pkg/primitive"
)

// AngleMapper maps a percent of the range onto the configured arc span.
type AngleMapper struct {
	Start, Sweep float64
}

func (m AngleMapper) AngleFor(percent float64) float64 {
	return m.Start + common.Clamp01(percent)*m.Sweep
}

// Point projects the angle for percent at radius r.
func (m AngleMapper) Point(percent, r float64) primitive.Point {
	return primitive.Polar(m.AngleFor(percent), r)
}
