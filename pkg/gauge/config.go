package gauge

import (
	"fmt"
	"math"

	"github.com/roffe/txgauge/pkg/common"
)

const (
	DefaultStartAngle      = 135.0
	DefaultSweepAngle      = 270.0
	DefaultWarningFraction = 0.8
)

// GaugeConfig is fixed for the lifetime of a gauge.
type GaugeConfig struct {
	Title string
	Min   float64
	Max   float64
	Units string

	// Degrees, 0 along +X, positive clockwise on screen. Sweep is signed.
	StartAngle float64
	SweepAngle float64

	TickStep        float64
	WarningFraction float64 // fraction of the range at which warning color starts

	LabelFormat string // optional "%.Nf", derived from TickStep when empty
	Style       Style
}

// DefaultConfig is the 0..100 face of the original dashboard.
func DefaultConfig(title, units string) GaugeConfig {
	return GaugeConfig{
		Title:           title,
		Min:             0,
		Max:             100,
		Units:           units,
		StartAngle:      DefaultStartAngle,
		SweepAngle:      DefaultSweepAngle,
		TickStep:        10,
		WarningFraction: DefaultWarningFraction,
		Style:           DefaultStyle(),
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validate checks cfg and returns the number of tick steps.
func (cfg GaugeConfig) validate() (int, error) {
	if !finite(cfg.Min) || !finite(cfg.Max) {
		return 0, configError(ErrInvalidRange, "min/max", [2]float64{cfg.Min, cfg.Max}, "range must be finite")
	}
	if cfg.Max <= cfg.Min {
		return 0, configError(ErrInvalidRange, "max", cfg.Max, "max must be greater than min")
	}
	if !finite(cfg.StartAngle) || !finite(cfg.SweepAngle) {
		return 0, configError(ErrInvalidSweep, "start/sweep", [2]float64{cfg.StartAngle, cfg.SweepAngle}, "angles must be finite")
	}
	if !finite(cfg.TickStep) || cfg.TickStep <= 0 {
		return 0, configError(ErrInvalidTickStep, "tick_step", cfg.TickStep, "tick step must be positive")
	}
	if !finite(cfg.WarningFraction) || cfg.WarningFraction <= 0 || cfg.WarningFraction > 1 {
		return 0, configError(ErrInvalidWarningFraction, "warning_fraction", cfg.WarningFraction, "must be within (0,1]")
	}
	ratio := (cfg.Max - cfg.Min) / cfg.TickStep
	steps := math.Round(ratio)
	if steps < 1 || math.Abs(ratio-steps) > common.Epsilon*math.Max(1, steps) {
		return 0, configError(ErrUnevenTickStep, "tick_step", cfg.TickStep, "tick step must divide max-min into whole steps")
	}
	if steps > MaxTickSteps {
		return 0, configError(ErrTooManyTicks, "tick_step", cfg.TickStep, fmt.Sprintf("more than %d steps", MaxTickSteps))
	}
	if cfg.LabelFormat != "" && parseFixedPrec(cfg.LabelFormat) < 0 {
		return 0, configError(ErrInvalidLabelFormat, "label_format", cfg.LabelFormat, `expected "%.Nf"`)
	}
	return int(steps), nil
}
