package dashboard_test

import (
	"errors"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roffe/txgauge/pkg/dashboard"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/powerbar"
	"github.com/roffe/txgauge/pkg/primitive"
)

func newDashboard(t *testing.T) (*dashboard.Dashboard, *ebus.Bus) {
	t.Helper()
	bus := ebus.New()
	t.Cleanup(bus.Close)
	db := dashboard.New(bus)
	require.NoError(t, db.AddGauge("speed", gauge.DefaultConfig("SPEED", "km/h")))
	require.NoError(t, db.AddBar(dashboard.BarConfig{
		ID:       "battery_voltage",
		Label:    "Battery Voltage",
		Units:    "V",
		Min:      0,
		Max:      64.75,
		ColorLow: color.RGBA{R: 0x4D, G: 0xFF, A: 0xFF},
	}, powerbar.New()))
	return db, bus
}

func TestSetValue(t *testing.T) {
	db, _ := newDashboard(t)
	tests := []struct {
		id   string
		in   float64
		want float64
	}{
		{id: "speed", in: 42, want: 42},
		{id: "speed", in: 150, want: 100},
		{id: "speed", in: -5, want: 0},
		{id: "battery_voltage", in: 51.8, want: 51.8},
		{id: "battery_voltage", in: 80, want: 64.75},
	}
	for _, tt := range tests {
		require.NoError(t, db.SetValue(tt.id, tt.in))
		got, err := db.Value(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestUnknownID(t *testing.T) {
	db, _ := newDashboard(t)
	assert.ErrorIs(t, db.SetValue("rpm", 1), dashboard.ErrUnknownGauge)
	_, err := db.Value("rpm")
	assert.ErrorIs(t, err, dashboard.ErrUnknownGauge)
	_, err = db.Render("battery_voltage")
	assert.ErrorIs(t, err, dashboard.ErrUnknownGauge)
	_, err = db.RenderBar("speed")
	assert.ErrorIs(t, err, dashboard.ErrUnknownGauge)
	_, err = db.BarHeight("rpm")
	assert.ErrorIs(t, err, dashboard.ErrUnknownGauge)
}

func TestDuplicateID(t *testing.T) {
	db, _ := newDashboard(t)
	assert.ErrorIs(t, db.AddGauge("speed", gauge.DefaultConfig("", "")), dashboard.ErrDuplicateID)
	assert.ErrorIs(t, db.AddGauge("battery_voltage", gauge.DefaultConfig("", "")), dashboard.ErrDuplicateID)
	assert.ErrorIs(t, db.AddBar(dashboard.BarConfig{ID: "speed", Max: 1}, powerbar.New()), dashboard.ErrDuplicateID)
	assert.ErrorIs(t, db.AddGauge("", gauge.DefaultConfig("", "")), dashboard.ErrDuplicateID)
}

func TestInvalidConfigs(t *testing.T) {
	db, _ := newDashboard(t)
	cfg := gauge.DefaultConfig("", "")
	cfg.TickStep = 7
	err := db.AddGauge("bad", cfg)
	assert.ErrorIs(t, err, gauge.ErrInvalidConfig)

	err = db.AddBar(dashboard.BarConfig{ID: "bad_bar", Min: 5, Max: 5}, powerbar.New())
	assert.True(t, errors.Is(err, gauge.ErrInvalidConfig))
	assert.Equal(t, []string{"speed"}, db.Gauges())
	assert.Equal(t, []string{"battery_voltage"}, db.Bars())
}

func TestRenderBar(t *testing.T) {
	db, _ := newDashboard(t)
	require.NoError(t, db.SetValue("battery_voltage", 51.8))
	prims, err := db.RenderBar("battery_voltage")
	require.NoError(t, err)
	require.Len(t, prims, 4)
	assert.Equal(t, "Battery Voltage", prims[0].(primitive.Text).Content)
	assert.Equal(t, "51.8 V", prims[1].(primitive.Text).Content)
	assert.InDelta(t, 200*51.8/64.75, prims[3].(primitive.Rect).Width, 1e-9)

	h, err := db.BarHeight("battery_voltage")
	require.NoError(t, err)
	assert.Equal(t, 25.0, h)
}

func TestRenderGauge(t *testing.T) {
	db, _ := newDashboard(t)
	require.NoError(t, db.SetValue("speed", 88.2))
	prims, err := db.Render("speed")
	require.NoError(t, err)
	var found bool
	for _, p := range prims {
		if txt, ok := p.(primitive.Text); ok && txt.Content == "88.2" {
			found = true
		}
	}
	assert.True(t, found, "readout missing")
}

func TestOnChange(t *testing.T) {
	db, _ := newDashboard(t)
	var got []string
	db.OnChange(func(id string) { got = append(got, id) })
	require.NoError(t, db.SetValue("speed", 1))
	require.NoError(t, db.SetValue("battery_voltage", 2))
	assert.Error(t, db.SetValue("nope", 3))
	assert.Equal(t, []string{"speed", "battery_voltage"}, got)
}

func TestAttach(t *testing.T) {
	db, bus := newDashboard(t)
	changed := make(chan string, 10)
	db.OnChange(func(id string) { changed <- id })
	db.Attach()
	defer db.Detach()

	require.NoError(t, bus.Publish("speed", 64))
	select {
	case id := <-changed:
		assert.Equal(t, "speed", id)
	case <-time.After(2 * time.Second):
		t.Fatal("value not delivered")
	}
	v, err := db.Value("speed")
	require.NoError(t, err)
	assert.Equal(t, 64.0, v)
}

func TestConcurrentAccess(t *testing.T) {
	db, _ := newDashboard(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = db.SetValue("speed", float64(j))
				_, _ = db.Render("speed")
				_ = db.SetValue("battery_voltage", float64(j)/2)
				_, _ = db.RenderBar("battery_voltage")
			}
		}()
	}
	wg.Wait()
	v, err := db.Value("speed")
	require.NoError(t, err)
	assert.LessOrEqual(t, v, 100.0)
}
