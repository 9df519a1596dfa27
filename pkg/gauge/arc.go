package gauge

import (
	"github.com/roffe/txgauge/pkg/common"
	"github.com/roffe/txgauge/pkg/primitive"
)

// ProgressArc is the filled portion of the span, growing from the start
// angle toward the end as percent rises.
func ProgressArc(cfg GaugeConfig, percent float64) primitive.Arc {
	return primitive.Arc{
		Radius:     common.ArcRadius,
		StartAngle: cfg.StartAngle,
		SweepAngle: cfg.SweepAngle * common.Clamp01(percent),
		Width:      common.ArcWidth,
		Color:      cfg.Style.Accent,
		RoundCap:   true,
	}
}

// TrackArc spans the whole sweep underneath the progress arc.
func TrackArc(cfg GaugeConfig) primitive.Arc {
	return primitive.Arc{
		Radius:     common.ArcRadius,
		StartAngle: cfg.StartAngle,
		SweepAngle: cfg.SweepAngle,
		Width:      common.ArcTrackWidth,
		Color:      cfg.Style.ArcTrack,
	}
}

var glowWidths = [...]float64{10, 4}

// GlowArcs returns the halo layers of the progress arc, widest first.
func GlowArcs(cfg GaugeConfig, percent float64) []primitive.Arc {
	arcs := make([]primitive.Arc, 0, len(glowWidths))
	for _, extra := range glowWidths {
		a := ProgressArc(cfg, percent)
		a.Width += extra
		a.Color = cfg.Style.ArcGlow
		arcs = append(arcs, a)
	}
	return arcs
}
