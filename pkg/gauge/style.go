package gauge

import (
	"image/color"

	"github.com/roffe/txgauge/pkg/primitive"
)

// Style carries every color and font a gauge face uses. Colors are alpha
// premultiplied, as image/color.RGBA requires.
type Style struct {
	Accent       color.RGBA
	Warning      color.RGBA
	Text         color.RGBA
	TickNeutral  color.RGBA
	ReadoutValue color.RGBA
	ReadoutUnits color.RGBA
	Title        color.RGBA
	PivotFill    color.RGBA
	PivotStroke  color.RGBA
	FaceInner    color.RGBA
	FaceOuter    color.RGBA
	FaceStroke   color.RGBA
	Rim          color.RGBA
	Glare        color.RGBA

	// Optional layers under the progress arc, skipped while transparent.
	ArcTrack color.RGBA
	ArcGlow  color.RGBA

	LabelFont primitive.Font
	ValueFont primitive.Font
	UnitsFont primitive.Font
	TitleFont primitive.Font
}

func DefaultStyle() Style {
	return Style{
		Accent:       color.RGBA{R: 0x00, G: 0xC8, B: 0xFF, A: 0xFF},
		Warning:      color.RGBA{R: 0xFF, G: 0x32, B: 0x32, A: 0xFF},
		Text:         color.RGBA{R: 0xDC, G: 0xDC, B: 0xDC, A: 0xFF},
		TickNeutral:  color.RGBA{R: 0xA0, G: 0xA0, B: 0xA0, A: 0xFF},
		ReadoutValue: color.RGBA{R: 0xE6, G: 0xFF, B: 0xFF, A: 0xFF},
		ReadoutUnits: color.RGBA{R: 0x78, G: 0xC8, B: 0xC8, A: 0xFF},
		Title:        color.RGBA{R: 0x00, G: 0xF2, B: 0xFF, A: 0xFF},
		PivotFill:    color.RGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF},
		PivotStroke:  color.RGBA{R: 0x3C, G: 0x3C, B: 0x3C, A: 0xFF},
		FaceInner:    color.RGBA{R: 0x28, G: 0x28, B: 0x2D, A: 0xFF},
		FaceOuter:    color.RGBA{R: 0x0A, G: 0x0A, B: 0x0F, A: 0xFF},
		FaceStroke:   color.RGBA{R: 0x3C, G: 0x3C, B: 0x41, A: 0xFF},
		Rim:          color.RGBA{R: 0x00, G: 0x33, B: 0x3C, A: 0x3C}, // #00DCFF at 60/255
		Glare:        color.RGBA{R: 0x0F, G: 0x0F, B: 0x0F, A: 0x0F}, // white at 15/255

		LabelFont: primitive.Font{Family: "Go", Size: 8, Bold: true},
		ValueFont: primitive.Font{Family: "Go Mono", Size: 22, Bold: true},
		UnitsFont: primitive.Font{Family: "Go Mono", Size: 10},
		TitleFont: primitive.Font{Family: "Go", Size: 9, Bold: true},
	}
}
