// Package dump prints primitive lists as styled terminal text, one line
// per primitive, for inspecting render output without a display.
package dump

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roffe/txgauge/pkg/primitive"
)

var (
	styleHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00F2FF")).
			Bold(true)

	styleIndex = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5A5A5A")).
			Width(4).
			Align(lipgloss.Right)

	styleKind = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DCDCDC")).
			Bold(true).
			Width(8).
			PaddingLeft(1)

	styleDetail = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A0A0A0"))
)

// Hex formats c as #rrggbb, or #rrggbbaa when it is not opaque. Values are
// straight alpha.
func Hex(c color.RGBA) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func swatch(c color.RGBA) string {
	if c.A == 0 {
		return "  "
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B))).
		Render("  ")
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func pt(p primitive.Point) string {
	return "(" + f(p.X) + "," + f(p.Y) + ")"
}

// Describe returns the plain text detail of p.
func Describe(p primitive.Primitive) string {
	switch v := p.(type) {
	case primitive.Arc:
		s := "center=" + pt(v.Center) + " r=" + f(v.Radius) + " start=" + f(v.StartAngle) +
			" sweep=" + f(v.SweepAngle) + " width=" + f(v.Width) + " color=" + Hex(v.Color)
		if v.RoundCap {
			s += " round"
		}
		return s
	case primitive.Line:
		return "from=" + pt(v.From) + " to=" + pt(v.To) + " width=" + f(v.Width) + " color=" + Hex(v.Color)
	case primitive.Polygon:
		pts := make([]string, len(v.Points))
		for i, p := range v.Points {
			pts[i] = pt(p)
		}
		return "points=" + strings.Join(pts, " ") + " fill=" + Hex(v.Fill)
	case primitive.Text:
		return "at=" + pt(v.Position) + " " + strconv.Quote(v.Content) + " align=" + v.Align.String() +
			" font=" + font(v.Font) + " color=" + Hex(v.Color)
	case primitive.Ellipse:
		return "center=" + pt(v.Center) + " rx=" + f(v.RX) + " ry=" + f(v.RY) + " fill=" + paint(v.Fill) +
			" stroke=" + Hex(v.Stroke) + "/" + f(v.StrokeWidth)
	case primitive.Rect:
		return "min=" + pt(v.Min) + " size=" + f(v.Width) + "x" + f(v.Height) + " fill=" + Hex(v.Fill) +
			" stroke=" + Hex(v.Stroke) + "/" + f(v.StrokeWidth)
	}
	return fmt.Sprintf("%T", p)
}

func font(ft primitive.Font) string {
	s := ft.Family + " " + f(ft.Size)
	if ft.Bold {
		s += " bold"
	}
	return s
}

func paint(p primitive.Paint) string {
	g := p.Gradient
	if g == nil {
		return Hex(p.Color)
	}
	stops := make([]string, len(g.Stops))
	for i, s := range g.Stops {
		stops[i] = f(s.Offset) + ":" + Hex(s.Color)
	}
	kind := "radial"
	if g.Kind == primitive.GradientSweep {
		kind = "sweep@" + f(g.StartAngle)
	}
	return kind + "[" + strings.Join(stops, " ") + "]"
}

// Write prints a title line followed by one line per primitive.
func Write(w io.Writer, title string, prims []primitive.Primitive) error {
	var b strings.Builder
	b.WriteString(styleHeader.Render(title))
	b.WriteByte('\n')
	for i, p := range prims {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			styleIndex.Render(strconv.Itoa(i)),
			" ",
			swatch(primitive.Color(p)),
			styleKind.Render(p.Kind()),
			styleDetail.Render(Describe(p)),
		))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
