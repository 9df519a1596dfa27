package dashboard

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/powerbar"
	"github.com/roffe/txgauge/pkg/primitive"
)

// BarConfig describes one telemetry power bar.
type BarConfig struct {
	ID        string
	Label     string
	Units     string
	Min, Max  float64
	ColorLow  color.RGBA
	ColorHigh color.RGBA
}

type barEntry struct {
	mu    sync.Mutex
	cfg   BarConfig
	state *gauge.ValueState
	bar   powerbar.Bar
}

func (d *Dashboard) AddBar(cfg BarConfig, bar powerbar.Bar) error {
	if !(cfg.Max > cfg.Min) {
		return fmt.Errorf("bar %s: %w", cfg.ID, &gauge.ConfigError{
			Code:   gauge.ErrInvalidRange,
			Field:  "max",
			Value:  cfg.Max,
			Reason: "max must be greater than min",
		})
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkID(cfg.ID); err != nil {
		return err
	}
	d.bars[cfg.ID] = &barEntry{cfg: cfg, state: gauge.NewValueState(cfg.Min, cfg.Max), bar: bar}
	d.barOrder = append(d.barOrder, cfg.ID)
	return nil
}

// RenderBar returns the primitives of bar id at its current value.
func (d *Dashboard) RenderBar(id string) ([]primitive.Primitive, error) {
	d.mu.RLock()
	b, ok := d.bars[id]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGauge, id)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	valueText, units := gauge.FormatReadout(b.state.Value(), b.cfg.Units)
	if units != "" {
		valueText += " " + units
	}
	return b.bar.Render(b.cfg.Label, valueText, b.state.Percent(), b.cfg.ColorLow, b.cfg.ColorHigh), nil
}

// Bars lists bar ids in the order they were added.
func (d *Dashboard) Bars() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.barOrder...)
}

// BarHeight is the height of bar id in face units.
func (d *Dashboard) BarHeight(id string) (float64, error) {
	d.mu.RLock()
	b, ok := d.bars[id]
	d.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownGauge, id)
	}
	return b.bar.Height(), nil
}
