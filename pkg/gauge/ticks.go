package gauge

import (
	"math"
	"strconv"

	"github.com/roffe/txgauge/pkg/common"
	"github.com/roffe/txgauge/pkg/primitive"
)

const maxLabelDecimals = 6

// MaxTickSteps bounds the tick table so the step count fits in memory and
// in an int.
const MaxTickSteps = 1 << 20

// tickSlack covers the rounding of min + i*step, a few ulps of the larger
// range bound.
const tickSlack = 16 * 0x1p-52

type Tick struct {
	Value     float64
	AngleDeg  float64
	IsWarning bool
	Label     string
}

// TickGenerator lays out the labeled ticks of a face.
type TickGenerator struct {
	min, max  float64
	step      float64
	steps     int
	threshold float64
	tolerance float64
	prec      int
	mapper    AngleMapper
}

// NewTickGenerator validates cfg and prepares a generator for it.
func NewTickGenerator(cfg GaugeConfig) (*TickGenerator, error) {
	steps, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	return newTickGenerator(cfg, steps), nil
}

func newTickGenerator(cfg GaugeConfig, steps int) *TickGenerator {
	span := cfg.Max - cfg.Min
	prec := parseFixedPrec(cfg.LabelFormat)
	if prec < 0 {
		prec = max(decimals(cfg.TickStep), decimals(cfg.Min))
	}
	return &TickGenerator{
		min:       cfg.Min,
		max:       cfg.Max,
		step:      cfg.TickStep,
		steps:     steps,
		threshold: cfg.Min + cfg.WarningFraction*span,
		tolerance: tickSlack * math.Max(math.Abs(cfg.Min), math.Abs(cfg.Max)),
		prec:      prec,
		mapper:    AngleMapper{Start: cfg.StartAngle, Sweep: cfg.SweepAngle},
	}
}

// Steps is the number of intervals between the first and last tick.
func (g *TickGenerator) Steps() int { return g.steps }

// Ticks returns Steps()+1 ticks, the first at min and the last at max.
func (g *TickGenerator) Ticks() []Tick {
	ticks := make([]Tick, 0, g.steps+1)
	for i := 0; i <= g.steps; i++ {
		val := g.min + float64(i)*g.step
		if i == g.steps {
			val = g.max
		}
		ticks = append(ticks, Tick{
			Value:     val,
			AngleDeg:  g.mapper.AngleFor(float64(i) / float64(g.steps)),
			IsWarning: val >= g.threshold-g.tolerance,
			Label:     g.label(val),
		})
	}
	return ticks
}

func (g *TickGenerator) label(v float64) string {
	s := strconv.FormatFloat(v, 'f', g.prec, 64)
	// no "-0" labels
	if len(s) > 1 && s[0] == '-' && isZero(s[1:]) {
		return s[1:]
	}
	return s
}

func isZero(s string) bool {
	for _, ch := range s {
		if ch != '0' && ch != '.' {
			return false
		}
	}
	return true
}

// decimals returns how many fractional digits v needs, capped at maxLabelDecimals.
func decimals(v float64) int {
	v = math.Abs(v)
	for d := 0; d < maxLabelDecimals; d++ {
		scaled := v * math.Pow10(d)
		if math.Abs(scaled-math.Round(scaled)) < common.Epsilon*math.Max(1, scaled) {
			return d
		}
	}
	return maxLabelDecimals
}

// tickPrimitives builds the mark and label for each tick.
func tickPrimitives(ticks []Tick, style Style) []primitive.Primitive {
	prims := make([]primitive.Primitive, 0, len(ticks)*2)
	for _, t := range ticks {
		col := style.TickNeutral
		if t.IsWarning {
			col = style.Warning
		}
		prims = append(prims,
			primitive.Line{
				From:  primitive.Polar(t.AngleDeg, common.TickInnerRadius),
				To:    primitive.Polar(t.AngleDeg, common.TickOuterRadius),
				Width: common.TickWidth,
				Color: col,
			},
			primitive.Text{
				Position: primitive.Polar(t.AngleDeg, common.LabelRadius),
				Content:  t.Label,
				Font:     style.LabelFont,
				Color:    style.Text,
				Align:    primitive.AlignCenter,
			},
		)
	}
	return prims
}
