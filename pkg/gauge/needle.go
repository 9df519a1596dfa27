package gauge

import (
	"github.com/roffe/txgauge/pkg/common"
	"github.com/roffe/txgauge/pkg/primitive"
)

// needleShape points along +X from the pivot: base left, tip, base right.
var needleShape = [3]primitive.Point{
	{X: 0, Y: -common.NeedleBase * common.OneHalf},
	{X: common.NeedleLength, Y: 0},
	{X: 0, Y: common.NeedleBase * common.OneHalf},
}

// NeedleGeometry builds the rotated needle and its pivot cap.
type NeedleGeometry struct {
	mapper          AngleMapper
	colorizer       ThresholdColorizer
	warningFraction float64
	style           Style
}

// NeedlePolygon returns the needle rotated to the angle for percent.
func (n NeedleGeometry) NeedlePolygon(percent float64) primitive.Polygon {
	angle := n.mapper.AngleFor(percent)
	pts := make([]primitive.Point, len(needleShape))
	for i, p := range needleShape {
		pts[i] = p.Rotate(angle)
	}
	return primitive.Polygon{
		Points: pts,
		Fill:   n.colorizer.ColorFor(n.IsWarning(percent)),
	}
}

func (n NeedleGeometry) IsWarning(percent float64) bool {
	return percent > n.warningFraction
}

// PivotCap is drawn over the needle and never changes color.
func (n NeedleGeometry) PivotCap() primitive.Ellipse {
	return primitive.Ellipse{
		RX:          common.PivotRadius,
		RY:          common.PivotRadius,
		Fill:        primitive.Solid(n.style.PivotFill),
		Stroke:      n.style.PivotStroke,
		StrokeWidth: 1,
	}
}
