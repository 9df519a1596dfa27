// Package powerbar renders the linear telemetry bar: a label, a value
// readout and a horizontal track filled to the current percent.
package powerbar

import (
	"image/color"

	"github.com/roffe/txgauge/pkg/common"
	"github.com/roffe/txgauge/pkg/primitive"
)

const (
	DefaultTrackWidth  = 200.0
	DefaultTrackHeight = 10.0
	DefaultTrackOffset = 15.0
)

type Style struct {
	Label       color.RGBA
	TrackFill   color.RGBA
	TrackStroke color.RGBA
	LabelFont   primitive.Font
	ValueFont   primitive.Font
}

func DefaultStyle() Style {
	return Style{
		Label:       color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		TrackFill:   color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF},
		TrackStroke: color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF},
		LabelFont:   primitive.Font{Family: "Go", Size: 10},
		ValueFont:   primitive.Font{Family: "Go", Size: 10, Bold: true},
	}
}

// Bar lays out one power bar with its label row centered on y=0.
type Bar struct {
	TrackWidth  float64
	TrackHeight float64
	TrackOffset float64 // distance from the label to the top of the track
	Style       Style
}

func New() Bar {
	return Bar{
		TrackWidth:  DefaultTrackWidth,
		TrackHeight: DefaultTrackHeight,
		TrackOffset: DefaultTrackOffset,
		Style:       DefaultStyle(),
	}
}

// Render emits the label, the value text, the track and its fill. The fill
// uses colorLow only; colorHigh is accepted but not used yet.
func (b Bar) Render(label, valueText string, percent float64, colorLow, colorHigh color.RGBA) []primitive.Primitive {
	return []primitive.Primitive{
		primitive.Text{
			Position: primitive.Pt(0, 0),
			Content:  label,
			Font:     b.Style.LabelFont,
			Color:    b.Style.Label,
			Align:    primitive.AlignLeft,
		},
		primitive.Text{
			Position: primitive.Pt(b.TrackWidth, 0),
			Content:  valueText,
			Font:     b.Style.ValueFont,
			Color:    colorLow,
			Align:    primitive.AlignRight,
		},
		primitive.Rect{
			Min:         primitive.Pt(0, b.TrackOffset),
			Width:       b.TrackWidth,
			Height:      b.TrackHeight,
			Fill:        b.Style.TrackFill,
			Stroke:      b.Style.TrackStroke,
			StrokeWidth: 1,
		},
		primitive.Rect{
			Min:    primitive.Pt(0, b.TrackOffset),
			Width:  b.TrackWidth * common.Clamp01(percent),
			Height: b.TrackHeight,
			Fill:   colorLow,
		},
	}
}

// Height is the vertical extent of a rendered bar below the label row.
func (b Bar) Height() float64 {
	return b.TrackOffset + b.TrackHeight
}
