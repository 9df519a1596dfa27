// Package raster replays gauge primitives onto a gogpu/gg software canvas.
//
// Face coordinates are mapped to pixels through a gg.Matrix held by the
// surface; the context's own transform stack stays at identity.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/roffe/txgauge/pkg/common"
	"github.com/roffe/txgauge/pkg/logger"
	"github.com/roffe/txgauge/pkg/primitive"
)

// Background is the window color of the original telemetry screen.
var Background = color.RGBA{R: 0x05, G: 0x0A, B: 0x0D, A: 0xFF}

type Surface struct {
	dc    *gg.Context
	fonts *Fonts
	view  gg.Matrix // face units to pixels, uniform scale
}

// NewSurface creates a width x height canvas. fonts may be nil, in which
// case text primitives are skipped.
func NewSurface(width, height int, fonts *Fonts) *Surface {
	return &Surface{
		dc:    gg.NewContext(width, height),
		fonts: fonts,
		view:  gg.Translate(float64(width)*common.OneHalf, float64(height)*common.OneHalf),
	}
}

func (s *Surface) Close() error { return s.dc.Close() }

// FitRect centers the face box with top left corner min on the canvas.
func (s *Surface) FitRect(min primitive.Point, w, h float64) {
	cw, ch := float64(s.dc.Width()), float64(s.dc.Height())
	k := math.Min(cw/w, ch/h)
	s.view = gg.Translate(cw*common.OneHalf, ch*common.OneHalf).
		Multiply(gg.Scale(k, k)).
		Multiply(gg.Translate(-(min.X + w*common.OneHalf), -(min.Y + h*common.OneHalf)))
}

func (s *Surface) Clear(bg color.RGBA) {
	s.dc.ClearWithColor(toGG(bg))
}

func (s *Surface) Image() image.Image {
	_ = s.dc.FlushGPU()
	return s.dc.Image()
}

func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

func (s *Surface) pt(p primitive.Point) gg.Point {
	return s.view.TransformPoint(gg.Pt(p.X, p.Y))
}

// scale converts a face length to pixels.
func (s *Surface) scale() float64 { return s.view.A }

// Draw replays prims in order.
func (s *Surface) Draw(prims []primitive.Primitive) error {
	for i, p := range prims {
		if err := s.draw(p); err != nil {
			return fmt.Errorf("primitive %d (%s): %w", i, p.Kind(), err)
		}
	}
	logger.Debug().Int("primitives", len(prims)).Float64("scale", s.scale()).Msg("raster draw")
	return nil
}

func (s *Surface) draw(p primitive.Primitive) error {
	switch v := p.(type) {
	case primitive.Arc:
		return s.arc(v)
	case primitive.Line:
		return s.line(v)
	case primitive.Polygon:
		return s.polygon(v)
	case primitive.Text:
		s.text(v)
		return nil
	case primitive.Ellipse:
		return s.ellipse(v)
	case primitive.Rect:
		return s.rect(v)
	}
	return fmt.Errorf("unsupported primitive %T", p)
}

func (s *Surface) arc(a primitive.Arc) error {
	if a.SweepAngle == 0 || a.Color.A == 0 {
		return nil
	}
	start, end := a.StartAngle, a.StartAngle+a.SweepAngle
	if end < start {
		start, end = end, start
	}
	c := s.pt(a.Center)
	s.dc.DrawArc(c.X, c.Y, a.Radius*s.scale(), common.Radians(start), common.Radians(end))
	s.setColor(a.Color)
	s.dc.SetLineWidth(a.Width * s.scale())
	if a.RoundCap {
		s.dc.SetLineCap(gg.LineCapRound)
	} else {
		s.dc.SetLineCap(gg.LineCapButt)
	}
	return s.dc.Stroke()
}

func (s *Surface) line(l primitive.Line) error {
	from, to := s.pt(l.From), s.pt(l.To)
	s.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	s.setColor(l.Color)
	s.dc.SetLineWidth(l.Width * s.scale())
	s.dc.SetLineCap(gg.LineCapButt)
	return s.dc.Stroke()
}

func (s *Surface) polygon(p primitive.Polygon) error {
	if len(p.Points) < 3 {
		return nil
	}
	for i, pt := range p.Points {
		d := s.pt(pt)
		if i == 0 {
			s.dc.MoveTo(d.X, d.Y)
			continue
		}
		s.dc.LineTo(d.X, d.Y)
	}
	s.dc.ClosePath()
	s.setColor(p.Fill)
	return s.dc.Fill()
}

func (s *Surface) text(t primitive.Text) {
	if s.fonts == nil || t.Content == "" {
		return
	}
	face := s.fonts.Face(t.Font, s.scale())
	if face == nil {
		return
	}
	ax := 0.0
	switch t.Align {
	case primitive.AlignCenter:
		ax = 0.5
	case primitive.AlignRight:
		ax = 1
	}
	pos := s.pt(t.Position)
	s.dc.SetFont(face)
	s.setColor(t.Color)
	s.dc.DrawStringAnchored(t.Content, pos.X, pos.Y, ax, 0.35)
}

func (s *Surface) ellipse(e primitive.Ellipse) error {
	c := s.pt(e.Center)
	rx, ry := e.RX*s.scale(), e.RY*s.scale()
	if brush := s.brush(e.Fill); brush != nil {
		s.dc.DrawEllipse(c.X, c.Y, rx, ry)
		s.dc.SetFillBrush(brush)
		if err := s.dc.Fill(); err != nil {
			return err
		}
	}
	if e.StrokeWidth > 0 && e.Stroke.A > 0 {
		s.dc.DrawEllipse(c.X, c.Y, rx, ry)
		s.setColor(e.Stroke)
		s.dc.SetLineWidth(e.StrokeWidth * s.scale())
		return s.dc.Stroke()
	}
	return nil
}

func (s *Surface) rect(r primitive.Rect) error {
	min := s.pt(r.Min)
	w, h := r.Width*s.scale(), r.Height*s.scale()
	if r.Fill.A > 0 && w > 0 && h > 0 {
		s.dc.DrawRectangle(min.X, min.Y, w, h)
		s.setColor(r.Fill)
		if err := s.dc.Fill(); err != nil {
			return err
		}
	}
	if r.StrokeWidth > 0 && r.Stroke.A > 0 {
		s.dc.DrawRectangle(min.X, min.Y, w, h)
		s.setColor(r.Stroke)
		s.dc.SetLineWidth(r.StrokeWidth * s.scale())
		s.dc.SetLineCap(gg.LineCapButt)
		return s.dc.Stroke()
	}
	return nil
}

// brush returns nil when the paint has nothing to fill.
func (s *Surface) brush(p primitive.Paint) gg.Brush {
	g := p.Gradient
	if g == nil {
		if p.Color.A == 0 {
			return nil
		}
		return gg.Solid(toGG(p.Color))
	}
	c := s.pt(g.Center)
	switch g.Kind {
	case primitive.GradientRadial:
		b := gg.NewRadialGradientBrush(c.X, c.Y, 0, g.Radius*s.scale())
		for _, st := range g.Stops {
			b.AddColorStop(st.Offset, toGG(st.Color))
		}
		return b
	case primitive.GradientSweep:
		b := gg.NewSweepGradientBrush(c.X, c.Y, common.Radians(g.StartAngle))
		for _, st := range g.Stops {
			b.AddColorStop(st.Offset, toGG(st.Color))
		}
		return b
	}
	return nil
}

// toGG converts a premultiplied color into gg's straight alpha form.
func toGG(c color.RGBA) gg.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return gg.RGBA2(float64(n.R)/255, float64(n.G)/255, float64(n.B)/255, float64(n.A)/255)
}

func (s *Surface) setColor(c color.RGBA) {
	s.dc.SetFillBrush(gg.Solid(toGG(c)))
}
