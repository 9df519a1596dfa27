package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/roffe/txgauge/pkg/common"
	"github.com/roffe/txgauge/pkg/primitive"
)

// Box is a region in face units.
type Box struct {
	Min           primitive.Point
	Width, Height float64
}

// GaugeBox is the face box of a round gauge centered on the origin.
var GaugeBox = Box{
	Min:    primitive.Pt(-common.FaceExtent*common.OneHalf, -common.FaceExtent*common.OneHalf),
	Width:  common.FaceExtent,
	Height: common.FaceExtent,
}

// barHeadroom is the room above y=0 taken by the vertically centered label row.
const barHeadroom = 8.0

// BarBox is the box of a power bar with the given track width and height
// below the label row, surrounded by pad.
func BarBox(width, height, pad float64) Box {
	return Box{
		Min:    primitive.Pt(-pad, -barHeadroom-pad),
		Width:  width + 2*pad,
		Height: height + barHeadroom + 2*pad,
	}
}

// Rasterize draws prims into a width x height image with box scaled to fit
// and centered.
func Rasterize(prims []primitive.Primitive, width, height int, box Box, fonts *Fonts, bg color.RGBA) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if box.Width <= 0 || box.Height <= 0 {
		return nil, fmt.Errorf("invalid box %gx%g", box.Width, box.Height)
	}
	s := NewSurface(width, height, fonts)
	defer s.Close()
	s.Clear(bg)
	s.FitRect(box.Min, box.Width, box.Height)
	if err := s.Draw(prims); err != nil {
		return nil, err
	}
	return s.Image(), nil
}

// WritePNG rasterizes prims like Rasterize and encodes the result as PNG.
func WritePNG(w io.Writer, prims []primitive.Primitive, width, height int, box Box, fonts *Fonts, bg color.RGBA) (err error) {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	s := NewSurface(width, height, fonts)
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	s.Clear(bg)
	s.FitRect(box.Min, box.Width, box.Height)
	if err := s.Draw(prims); err != nil {
		return err
	}
	return s.EncodePNG(w)
}

// PixelSize returns the image size of box at scale pixels per face unit.
func (b Box) PixelSize(scale float64) (int, int) {
	return int(b.Width*scale + common.OneHalf), int(b.Height*scale + common.OneHalf)
}
