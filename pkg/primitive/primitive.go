// Package primitive holds the drawing instructions emitted by the gauge
// render models. A host surface replays them in order, later entries
// painted over earlier ones.
//
// Coordinates are in face units with +Y pointing down. Angles are degrees,
// 0 along +X, positive angles turn clockwise on screen.
package primitive

import (
	"image/color"
	"math"
)

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Rotate turns p around the origin by deg degrees.
func (p Point) Rotate(deg float64) Point {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Point{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
}

// Polar returns the point at radius r along the ray at deg degrees.
func Polar(deg, r float64) Point {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Point{X: r * c, Y: r * s}
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

type Font struct {
	Family string
	Size   float64
	Bold   bool
}

type GradientKind int

const (
	GradientRadial GradientKind = iota
	GradientSweep
)

type Stop struct {
	Offset float64
	Color  color.RGBA
}

// Gradient describes a color ramp. Radial ramps run from Center out to
// Radius, sweep ramps turn clockwise from StartAngle around Center.
type Gradient struct {
	Kind       GradientKind
	Center     Point
	Radius     float64
	StartAngle float64
	Stops      []Stop
}

// Paint is either a solid Color or, when Gradient is set, a gradient.
type Paint struct {
	Color    color.RGBA
	Gradient *Gradient
}

func Solid(c color.RGBA) Paint { return Paint{Color: c} }

// Primitive is one of Arc, Line, Polygon, Text, Ellipse or Rect.
type Primitive interface {
	primitive()
	Kind() string
}

type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	SweepAngle float64
	Width      float64
	Color      color.RGBA
	RoundCap   bool
}

type Line struct {
	From, To Point
	Width    float64
	Color    color.RGBA
}

type Polygon struct {
	Points []Point
	Fill   color.RGBA
}

// Text is vertically centered on Position; Align places it horizontally.
type Text struct {
	Position Point
	Content  string
	Font     Font
	Color    color.RGBA
	Align    Align
}

type Ellipse struct {
	Center      Point
	RX, RY      float64
	Fill        Paint
	Stroke      color.RGBA
	StrokeWidth float64
}

type Rect struct {
	Min           Point
	Width, Height float64
	Fill          color.RGBA
	Stroke        color.RGBA
	StrokeWidth   float64
}

func (Arc) primitive()     {}
func (Line) primitive()    {}
func (Polygon) primitive() {}
func (Text) primitive()    {}
func (Ellipse) primitive() {}
func (Rect) primitive()    {}

func (Arc) Kind() string     { return "arc" }
func (Line) Kind() string    { return "line" }
func (Polygon) Kind() string { return "polygon" }
func (Text) Kind() string    { return "text" }
func (Ellipse) Kind() string { return "ellipse" }
func (Rect) Kind() string    { return "rect" }

// Color returns the dominant color of p, used by previews and dumps.
func Color(p Primitive) color.RGBA {
	switch v := p.(type) {
	case Arc:
		return v.Color
	case Line:
		return v.Color
	case Polygon:
		return v.Fill
	case Text:
		return v.Color
	case Ellipse:
		if v.Fill.Gradient != nil && len(v.Fill.Gradient.Stops) > 0 {
			return v.Fill.Gradient.Stops[0].Color
		}
		if v.Fill.Color.A == 0 {
			return v.Stroke
		}
		return v.Fill.Color
	case Rect:
		return v.Fill
	}
	return color.RGBA{}
}
