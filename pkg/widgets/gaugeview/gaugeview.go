// Package gaugeview hosts gauge and power bar primitives in a fyne window.
package gaugeview

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/roffe/txgauge/pkg/logger"
	"github.com/roffe/txgauge/pkg/primitive"
	"github.com/roffe/txgauge/pkg/raster"
)

const barPad = 10

// RenderFunc returns the current primitives of one gauge or bar.
type RenderFunc func() ([]primitive.Primitive, error)

// View rasterizes whatever its RenderFunc returns each time fyne asks for
// pixels. Refresh it after every value change.
type View struct {
	widget.BaseWidget

	render  RenderFunc
	fonts   *raster.Fonts
	box     raster.Box
	minsize fyne.Size

	mu   sync.Mutex
	last image.Image
}

// NewGauge shows a round gauge face.
func NewGauge(render RenderFunc, fonts *raster.Fonts) *View {
	return newView(render, fonts, raster.GaugeBox, fyne.NewSize(200, 200))
}

// NewBar shows a power bar of the given track width and height.
func NewBar(render RenderFunc, fonts *raster.Fonts, width, height float64) *View {
	box := raster.BarBox(width, height, barPad)
	return newView(render, fonts, box, fyne.NewSize(float32(box.Width), float32(box.Height)))
}

func newView(render RenderFunc, fonts *raster.Fonts, box raster.Box, minsize fyne.Size) *View {
	v := &View{
		render:  render,
		fonts:   fonts,
		box:     box,
		minsize: minsize,
	}
	v.ExtendBaseWidget(v)
	return v
}

// SetMinSize overrides the size the view asks its container for.
func (v *View) SetMinSize(s fyne.Size) {
	v.minsize = s
}

func (v *View) MinSize() fyne.Size { return v.minsize }

func (v *View) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRaster(v.draw))
}

func (v *View) draw(w, h int) image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	prims, err := v.render()
	if err != nil {
		logger.Error().Err(err).Msg("gauge render")
		if v.last != nil {
			return v.last
		}
		return image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	img, err := raster.Rasterize(prims, w, h, v.box, v.fonts, raster.Background)
	if err != nil {
		logger.Error().Err(err).Msg("gauge rasterize")
		return image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	v.last = img
	return img
}
