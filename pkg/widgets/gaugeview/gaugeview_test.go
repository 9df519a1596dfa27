package gaugeview_test

import (
	"errors"
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/powerbar"
	"github.com/roffe/txgauge/pkg/primitive"
	"github.com/roffe/txgauge/pkg/raster"
	"github.com/roffe/txgauge/pkg/widgets/gaugeview"
)

func generator(t *testing.T, v *gaugeview.View) func(w, h int) image.Image {
	t.Helper()
	objs := test.WidgetRenderer(v).Objects()
	require.Len(t, objs, 1)
	r, ok := objs[0].(*canvas.Raster)
	require.True(t, ok, "expected a raster, got %T", objs[0])
	return r.Generator
}

func TestGaugeView(t *testing.T) {
	test.NewApp()
	m, err := gauge.New(gauge.DefaultConfig("SPEED", "km/h"))
	require.NoError(t, err)
	m.SetValue(50)

	v := gaugeview.NewGauge(func() ([]primitive.Primitive, error) { return m.Render(), nil }, nil)
	assert.Equal(t, fyne.NewSize(200, 200), v.MinSize())

	img := generator(t, v)(160, 120)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())

	w := test.NewWindow(v)
	defer w.Close()
	w.Resize(fyne.NewSize(220, 220))
	assert.NotNil(t, w.Canvas().Capture())
}

func TestBarView(t *testing.T) {
	test.NewApp()
	bar := powerbar.New()
	v := gaugeview.NewBar(func() ([]primitive.Primitive, error) {
		return bar.Render("Battery Current", "28.5 A", 0.5, raster.Background, raster.Background), nil
	}, nil, bar.TrackWidth, bar.Height())
	assert.Equal(t, float32(220), v.MinSize().Width)
	assert.Equal(t, float32(53), v.MinSize().Height)
}

func TestSetMinSize(t *testing.T) {
	test.NewApp()
	v := gaugeview.NewGauge(func() ([]primitive.Primitive, error) { return nil, nil }, nil)
	v.SetMinSize(fyne.NewSize(300, 300))
	assert.Equal(t, fyne.NewSize(300, 300), v.MinSize())
}

func TestRenderErrorKeepsLastFrame(t *testing.T) {
	test.NewApp()
	fail := false
	v := gaugeview.NewGauge(func() ([]primitive.Primitive, error) {
		if fail {
			return nil, errors.New("gone")
		}
		return nil, nil
	}, nil)
	draw := generator(t, v)
	first := draw(50, 50)
	fail = true
	assert.Same(t, first, draw(50, 50))
}

func TestZeroSizeFrame(t *testing.T) {
	test.NewApp()
	v := gaugeview.NewGauge(func() ([]primitive.Primitive, error) { return nil, nil }, nil)
	img := generator(t, v)(0, 0)
	assert.Equal(t, 1, img.Bounds().Dx())
}
