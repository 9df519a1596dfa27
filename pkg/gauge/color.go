package gauge

import "image/color"

// ThresholdColorizer picks the accent or warning color.
type ThresholdColorizer struct {
	Accent, Warning color.RGBA
}

func (c ThresholdColorizer) ColorFor(isWarning bool) color.RGBA {
	if isWarning {
		return c.Warning
	}
	return c.Accent
}
