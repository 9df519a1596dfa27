package raster_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/powerbar"
	"github.com/roffe/txgauge/pkg/primitive"
	"github.com/roffe/txgauge/pkg/raster"
)

func loadFonts(t *testing.T) *raster.Fonts {
	t.Helper()
	fonts, err := raster.LoadGoFonts()
	require.NoError(t, err)
	t.Cleanup(func() { _ = fonts.Close() })
	return fonts
}

func gaugePrims(t *testing.T, value float64) []primitive.Primitive {
	t.Helper()
	m, err := gauge.New(gauge.DefaultConfig("SPEED", "km/h"))
	require.NoError(t, err)
	m.SetValue(value)
	return m.Render()
}

func differs(img image.Image, bg color.RGBA) int {
	b := img.Bounds()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if uint8(r>>8) != bg.R || uint8(g>>8) != bg.G || uint8(bl>>8) != bg.B {
				n++
			}
		}
	}
	return n
}

func TestRasterizeGauge(t *testing.T) {
	fonts := loadFonts(t)
	img, err := raster.Rasterize(gaugePrims(t, 88.2), 240, 200, raster.GaugeBox, fonts, raster.Background)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 240, 200), img.Bounds())
	assert.Greater(t, differs(img, raster.Background), 1000)

	// corners stay background
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, raster.Background.R, uint8(r>>8))
	assert.Equal(t, raster.Background.G, uint8(g>>8))
	assert.Equal(t, raster.Background.B, uint8(b>>8))
}

func TestRasterizeWithoutFonts(t *testing.T) {
	img, err := raster.Rasterize(gaugePrims(t, 10), 100, 100, raster.GaugeBox, nil, raster.Background)
	require.NoError(t, err)
	assert.Greater(t, differs(img, raster.Background), 100)
}

func TestRasterizeInvalidSize(t *testing.T) {
	_, err := raster.Rasterize(nil, 0, 10, raster.GaugeBox, nil, raster.Background)
	assert.Error(t, err)
	_, err = raster.Rasterize(nil, 10, 10, raster.Box{}, nil, raster.Background)
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	fonts := loadFonts(t)
	var buf bytes.Buffer
	require.NoError(t, raster.WritePNG(&buf, gaugePrims(t, 42), 128, 128, raster.GaugeBox, fonts, raster.Background))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestBarBox(t *testing.T) {
	bar := powerbar.New()
	box := raster.BarBox(bar.TrackWidth, bar.Height(), 10)
	w, h := box.PixelSize(2)
	assert.Equal(t, 440, w)
	assert.Equal(t, 106, h)

	prims := bar.Render("Battery Voltage", "51.8 V", 0.8, color.RGBA{R: 0x4D, G: 0xFF, A: 0xFF}, color.RGBA{})
	img, err := raster.Rasterize(prims, w, h, box, loadFonts(t), raster.Background)
	require.NoError(t, err)

	// sample the fill at 50% and the empty track at 90% along its middle row
	y := int((10 + 8 + bar.TrackOffset + bar.TrackHeight/2) * 2)
	filled := color.NRGBAModel.Convert(img.At(int((10+100)*2), y)).(color.NRGBA)
	empty := color.NRGBAModel.Convert(img.At(int((10+180)*2), y)).(color.NRGBA)
	assert.Equal(t, uint8(0xFF), filled.G)
	assert.Equal(t, uint8(0x11), empty.G)
}

func TestSurfaceDrawLine(t *testing.T) {
	s := raster.NewSurface(10, 10, nil)
	defer s.Close()
	err := s.Draw([]primitive.Primitive{primitive.Line{To: primitive.Pt(1, 1), Width: 1, Color: color.RGBA{A: 0xFF}}})
	assert.NoError(t, err)
}

func TestFontsFaceCache(t *testing.T) {
	fonts := loadFonts(t)
	f := primitive.Font{Family: "Go Mono", Size: 10, Bold: true}
	a := fonts.Face(f, 2)
	b := fonts.Face(f, 2)
	require.NotNil(t, a)
	assert.Equal(t, a, b)
	assert.NotNil(t, fonts.Face(primitive.Font{Family: "Go", Size: 8}, 0.01))
}

func TestRasterizeFitsBoxToCanvas(t *testing.T) {
	red := color.RGBA{R: 0xFF, A: 0xFF}
	// left half of a 20x10 box, scaled by 10 and centered vertically
	prims := []primitive.Primitive{
		primitive.Rect{Min: primitive.Pt(-10, -5), Width: 10, Height: 10, Fill: red},
	}
	box := raster.Box{Min: primitive.Pt(-10, -5), Width: 20, Height: 10}
	img, err := raster.Rasterize(prims, 200, 200, box, nil, raster.Background)
	require.NoError(t, err)

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{name: "inside", x: 50, y: 100, want: red},
		{name: "right half", x: 150, y: 100, want: raster.Background},
		{name: "above box", x: 50, y: 25, want: raster.Background},
		{name: "below box", x: 50, y: 175, want: raster.Background},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, _ := img.At(tt.x, tt.y).RGBA()
			assert.Equal(t, tt.want.R, uint8(r>>8))
			assert.Equal(t, tt.want.G, uint8(g>>8))
			assert.Equal(t, tt.want.B, uint8(b>>8))
		})
	}
}
