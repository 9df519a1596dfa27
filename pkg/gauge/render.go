// Package gauge computes the drawing primitives of a circular analogue
// gauge from its configuration and current value.
//
// A Model is not safe for concurrent use; hosts serialize SetValue and
// Render for a given gauge.
package gauge

import (
	"image/color"

	"github.com/roffe/txgauge/pkg/common"
	"github.com/roffe/txgauge/pkg/primitive"
)

const (
	titleOffsetY = -30.0
	valueOffsetY = 10.0
	unitsOffsetY = 40.0
	glareStart   = -45.0
)

type Model struct {
	cfg    GaugeConfig
	state  *ValueState
	needle NeedleGeometry

	ticks    []Tick
	tickPrim []primitive.Primitive
}

// New validates cfg and builds a gauge sitting at cfg.Min. A zero Style is
// replaced by DefaultStyle.
func New(cfg GaugeConfig) (*Model, error) {
	if cfg.Style == (Style{}) {
		cfg.Style = DefaultStyle()
	}
	steps, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	mapper := AngleMapper{Start: cfg.StartAngle, Sweep: cfg.SweepAngle}
	m := &Model{
		cfg:    cfg,
		state:  NewValueState(cfg.Min, cfg.Max),
		needle: NeedleGeometry{
			mapper:          mapper,
			colorizer:       ThresholdColorizer{Accent: cfg.Style.Accent, Warning: cfg.Style.Warning},
			warningFraction: cfg.WarningFraction,
			style:           cfg.Style,
		},
	}
	m.ticks = newTickGenerator(cfg, steps).Ticks()
	m.tickPrim = tickPrimitives(m.ticks, cfg.Style)
	return m, nil
}

func (m *Model) Config() GaugeConfig { return m.cfg }

func (m *Model) SetValue(v float64) { m.state.SetValue(v) }

func (m *Model) Value() float64 { return m.state.Value() }

func (m *Model) Percent() float64 { return m.state.Percent() }

// Ticks returns a copy of the cached tick layout.
func (m *Model) Ticks() []Tick {
	return append([]Tick(nil), m.ticks...)
}

func (m *Model) Needle() NeedleGeometry { return m.needle }

// Render returns the face, progress arc, ticks, needle, readout and glass
// highlight in paint order. A visible ArcTrack or ArcGlow adds its layers
// just before the progress arc.
func (m *Model) Render() []primitive.Primitive {
	pct := m.state.Percent()
	prims := make([]primitive.Primitive, 0, len(m.tickPrim)+13)

	// gradients are built per call so callers never share them
	prims = append(prims, facePrimitives(m.cfg.Style)...)
	if m.cfg.Style.ArcTrack.A > 0 {
		prims = append(prims, TrackArc(m.cfg))
	}
	if m.cfg.Style.ArcGlow.A > 0 {
		for _, a := range GlowArcs(m.cfg, pct) {
			prims = append(prims, a)
		}
	}
	prims = append(prims, ProgressArc(m.cfg, pct))
	prims = append(prims, m.tickPrim...)
	prims = append(prims, m.needle.NeedlePolygon(pct), m.needle.PivotCap())
	prims = append(prims, m.readout()...)
	prims = append(prims, glassPrimitive(m.cfg.Style))
	return prims
}

func (m *Model) readout() []primitive.Primitive {
	st := m.cfg.Style
	valueText, unitsText := FormatReadout(m.state.Value(), m.cfg.Units)
	prims := make([]primitive.Primitive, 0, 3)
	if m.cfg.Title != "" {
		prims = append(prims, primitive.Text{
			Position: primitive.Pt(0, titleOffsetY),
			Content:  m.cfg.Title,
			Font:     st.TitleFont,
			Color:    st.Title,
			Align:    primitive.AlignCenter,
		})
	}
	return append(prims,
		primitive.Text{
			Position: primitive.Pt(0, valueOffsetY),
			Content:  valueText,
			Font:     st.ValueFont,
			Color:    st.ReadoutValue,
			Align:    primitive.AlignCenter,
		},
		primitive.Text{
			Position: primitive.Pt(0, unitsOffsetY),
			Content:  unitsText,
			Font:     st.UnitsFont,
			Color:    st.ReadoutUnits,
			Align:    primitive.AlignCenter,
		},
	)
}

func facePrimitives(st Style) []primitive.Primitive {
	return []primitive.Primitive{
		primitive.Ellipse{
			RX: common.FaceRadius,
			RY: common.FaceRadius,
			Fill: primitive.Paint{Gradient: &primitive.Gradient{
				Kind:   primitive.GradientRadial,
				Radius: common.FaceRadius + 5,
				Stops: []primitive.Stop{
					{Offset: 0, Color: st.FaceInner},
					{Offset: 1, Color: st.FaceOuter},
				},
			}},
			Stroke:      st.FaceStroke,
			StrokeWidth: 2,
		},
		primitive.Ellipse{
			RX:          common.RimRadius,
			RY:          common.RimRadius,
			Stroke:      st.Rim,
			StrokeWidth: common.RimWidth,
		},
	}
}

func glassPrimitive(st Style) primitive.Primitive {
	var transparent color.RGBA
	return primitive.Ellipse{
		RX: common.GlassRadius,
		RY: common.GlassRadius,
		Fill: primitive.Paint{Gradient: &primitive.Gradient{
			Kind:       primitive.GradientSweep,
			StartAngle: glareStart,
			Stops: []primitive.Stop{
				{Offset: 0, Color: transparent},
				{Offset: 0.1, Color: st.Glare},
				{Offset: 0.2, Color: transparent},
			},
		}},
	}
}
