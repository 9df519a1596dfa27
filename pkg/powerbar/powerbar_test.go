package powerbar_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roffe/txgauge/pkg/powerbar"
	"github.com/roffe/txgauge/pkg/primitive"
)

var (
	green  = color.RGBA{R: 0x4D, G: 0xFF, A: 0xFF}
	yellow = color.RGBA{R: 0xCC, G: 0xFF, A: 0xFF}
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		fill    float64
	}{
		{name: "eighty percent", percent: 0.8, fill: 160},
		{name: "empty", percent: 0, fill: 0},
		{name: "full", percent: 1, fill: 200},
		{name: "over", percent: 1.4, fill: 200},
		{name: "under", percent: -0.3, fill: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := powerbar.New()
			prims := bar.Render("Battery Voltage", "51.8 V", tt.percent, green, yellow)
			require.Len(t, prims, 4)

			label := prims[0].(primitive.Text)
			assert.Equal(t, "Battery Voltage", label.Content)
			assert.Equal(t, primitive.AlignLeft, label.Align)
			assert.Equal(t, primitive.Pt(0, 0), label.Position)

			value := prims[1].(primitive.Text)
			assert.Equal(t, "51.8 V", value.Content)
			assert.Equal(t, primitive.AlignRight, value.Align)
			assert.Equal(t, 200.0, value.Position.X)
			assert.Equal(t, green, value.Color)

			track := prims[2].(primitive.Rect)
			assert.Equal(t, primitive.Pt(0, 15), track.Min)
			assert.Equal(t, 200.0, track.Width)
			assert.Equal(t, 10.0, track.Height)
			assert.Equal(t, color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xFF}, track.Fill)
			assert.Equal(t, color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}, track.Stroke)

			fill := prims[3].(primitive.Rect)
			assert.InDelta(t, tt.fill, fill.Width, 1e-9)
			assert.Equal(t, track.Min, fill.Min)
			assert.Equal(t, green, fill.Fill)
		})
	}
}

func TestColorHighIsInert(t *testing.T) {
	bar := powerbar.New()
	a := bar.Render("x", "1.0", 0.5, green, yellow)
	b := bar.Render("x", "1.0", 0.5, green, color.RGBA{B: 0xFF, A: 0xFF})
	assert.Equal(t, a, b)
}

func TestCustomTrack(t *testing.T) {
	bar := powerbar.New()
	bar.TrackWidth = 300
	bar.TrackHeight = 6
	fill := bar.Render("x", "", 0.5, green, green)[3].(primitive.Rect)
	assert.Equal(t, 150.0, fill.Width)
	assert.Equal(t, 6.0, fill.Height)
	assert.Equal(t, 21.0, bar.Height())
}
