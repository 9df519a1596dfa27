// Package dashboard keeps the gauges and power bars of one screen by id and
// routes telemetry values to them. Every gauge is guarded by its own lock
// so feed goroutines and the host's render loop can share it.
package dashboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/logger"
	"github.com/roffe/txgauge/pkg/primitive"
)

var (
	ErrUnknownGauge = errors.New("unknown gauge")
	ErrDuplicateID  = errors.New("duplicate gauge id")
)

type gaugeEntry struct {
	mu    sync.Mutex
	model *gauge.Model
}

type Dashboard struct {
	mu       sync.RWMutex
	gauges   map[string]*gaugeEntry
	bars     map[string]*barEntry
	order    []string
	barOrder []string

	bus      *ebus.Bus
	cancels  []func()
	onChange func(id string)
}

// New creates an empty dashboard fed from bus. A nil bus uses ebus.Default.
func New(bus *ebus.Bus) *Dashboard {
	if bus == nil {
		bus = ebus.Default()
	}
	return &Dashboard{
		gauges: make(map[string]*gaugeEntry),
		bars:   make(map[string]*barEntry),
		bus:    bus,
	}
}

func (d *Dashboard) checkID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrDuplicateID)
	}
	if _, ok := d.gauges[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	if _, ok := d.bars[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	return nil
}

// AddGauge validates cfg and registers the gauge under id.
func (d *Dashboard) AddGauge(id string, cfg gauge.GaugeConfig) error {
	m, err := gauge.New(cfg)
	if err != nil {
		return fmt.Errorf("gauge %s: %w", id, err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkID(id); err != nil {
		return err
	}
	d.gauges[id] = &gaugeEntry{model: m}
	d.order = append(d.order, id)
	return nil
}

// OnChange registers the repaint trigger called after every accepted value.
func (d *Dashboard) OnChange(f func(id string)) {
	d.mu.Lock()
	d.onChange = f
	d.mu.Unlock()
}

// SetValue stores v on the gauge or bar named id, clamped to its range.
func (d *Dashboard) SetValue(id string, v float64) error {
	d.mu.RLock()
	g, gok := d.gauges[id]
	b, bok := d.bars[id]
	notify := d.onChange
	d.mu.RUnlock()

	switch {
	case gok:
		g.mu.Lock()
		g.model.SetValue(v)
		g.mu.Unlock()
	case bok:
		b.mu.Lock()
		b.state.SetValue(v)
		b.mu.Unlock()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGauge, id)
	}
	if notify != nil {
		notify(id)
	}
	return nil
}

// Value returns the clamped current value of a gauge or bar.
func (d *Dashboard) Value(id string) (float64, error) {
	d.mu.RLock()
	g, gok := d.gauges[id]
	b, bok := d.bars[id]
	d.mu.RUnlock()
	switch {
	case gok:
		g.mu.Lock()
		defer g.mu.Unlock()
		return g.model.Value(), nil
	case bok:
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.state.Value(), nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownGauge, id)
}

// Render returns the primitives of gauge id.
func (d *Dashboard) Render(id string) ([]primitive.Primitive, error) {
	d.mu.RLock()
	g, ok := d.gauges[id]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGauge, id)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.model.Render(), nil
}

// Gauges lists gauge ids in the order they were added.
func (d *Dashboard) Gauges() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.order...)
}

// Attach subscribes every gauge and bar to the bus topic named after its id.
func (d *Dashboard) Attach() {
	d.mu.Lock()
	ids := append(append([]string(nil), d.order...), d.barOrder...)
	d.mu.Unlock()

	cancels := make([]func(), 0, len(ids))
	for _, id := range ids {
		cancels = append(cancels, d.bus.SubscribeFunc(id, func(v float64) {
			if err := d.SetValue(id, v); err != nil {
				logger.Warn().Err(err).Str("id", id).Msg("dropping value")
			}
		}))
	}

	d.mu.Lock()
	d.cancels = append(d.cancels, cancels...)
	d.mu.Unlock()
	logger.Debug().Int("topics", len(ids)).Msg("dashboard attached")
}

// Detach undoes Attach.
func (d *Dashboard) Detach() {
	d.mu.Lock()
	cancels := d.cancels
	d.cancels = nil
	d.mu.Unlock()
	for _, c := range cancels {
		c()
	}
}
