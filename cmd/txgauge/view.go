package main

import (
	"context"
	"image/color"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roffe/txgauge/pkg/config"
	"github.com/roffe/txgauge/pkg/dashboard"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/logger"
	"github.com/roffe/txgauge/pkg/primitive"
	"github.com/roffe/txgauge/pkg/raster"
	"github.com/roffe/txgauge/pkg/widgets/gaugeview"
)

func newViewCmd(v *viper.Viper) *cobra.Command {
	var (
		demo      bool
		interval  time.Duration
		gaugeSize float32
	)
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the dashboard in a window",
		Long: `View opens a window with every gauge and bar. Values arrive on the
event bus under topics named after each id; --demo feeds a synthetic
sweep so the dashboard can be checked without a telemetry source.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, bus, err := load(v)
			if err != nil {
				return err
			}
			defer bus.Close()

			fonts, err := raster.LoadGoFonts()
			if err != nil {
				return err
			}
			defer fonts.Close()

			a := app.NewWithID("com.roffe.txgauge")
			a.Settings().SetTheme(&gaugeTheme{})
			w := a.NewWindow("txgauge")
			w.SetContent(layoutDashboard(db, fonts, gaugeSize))
			w.Resize(fyne.NewSize(640, 480))

			db.Attach()
			defer db.Detach()

			if logger.DebugEnabled() {
				defer bus.SubscribeAllFunc(func(topic string, value float64) {
					logger.Debug().Str("topic", topic).Float64("value", value).Msg("bus")
				})()
			}

			if demo {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				go demoFeed(ctx, bus, cfg, interval)
			}
			w.ShowAndRun()
			return nil
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "feed synthetic values")
	cmd.Flags().DurationVar(&interval, "interval", 50*time.Millisecond, "demo update interval")
	cmd.Flags().Float32Var(&gaugeSize, "gauge-size", 300, "gauge cell size in window units")
	return cmd
}

func layoutDashboard(db *dashboard.Dashboard, fonts *raster.Fonts, gaugeSize float32) fyne.CanvasObject {
	views := make(map[string]*gaugeview.View)

	cell := fyne.NewSize(gaugeSize, gaugeSize)
	gauges := container.NewGridWrap(cell)
	for _, id := range db.Gauges() {
		gv := gaugeview.NewGauge(func() ([]primitive.Primitive, error) {
			return db.Render(id)
		}, fonts)
		gv.SetMinSize(cell)
		views[id] = gv
		gauges.Add(gv)
	}

	bars := container.NewVBox()
	for _, id := range db.Bars() {
		h, err := db.BarHeight(id)
		if err != nil {
			logger.Error().Err(err).Str("id", id).Msg("bar height")
			continue
		}
		prims, err := db.RenderBar(id)
		if err != nil {
			logger.Error().Err(err).Str("id", id).Msg("bar render")
			continue
		}
		bv := gaugeview.NewBar(func() ([]primitive.Primitive, error) {
			return db.RenderBar(id)
		}, fonts, barTrackWidth(prims), h)
		views[id] = bv
		bars.Add(bv)
	}

	db.OnChange(func(id string) {
		if v, ok := views[id]; ok {
			v.Refresh()
		}
	})

	return container.NewBorder(nil, nil, nil, container.NewPadded(bars), gauges)
}

// demoFeed sweeps every gauge and bar back and forth across its range,
// each with its own phase.
func demoFeed(ctx context.Context, bus *ebus.Bus, cfg *config.Config, interval time.Duration) {
	type channel struct {
		id       string
		min, max float64
	}
	var chans []channel
	for _, g := range cfg.Gauges {
		chans = append(chans, channel{g.ID, g.Min, g.Max})
	}
	for _, b := range cfg.Bars {
		chans = append(chans, channel{b.ID, b.Min, b.Max})
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s := now.Sub(start).Seconds()
			for i, c := range chans {
				phase := float64(i) * math.Pi / 3
				frac := (math.Sin(s*0.8+phase) + 1) / 2
				if err := bus.Publish(c.id, c.min+frac*(c.max-c.min)); err != nil {
					logger.Warn().Err(err).Str("topic", c.id).Msg("demo publish")
				}
			}
		}
	}
}

type gaugeTheme struct{}

func (m gaugeTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameBackground {
		return raster.Background
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (m gaugeTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m gaugeTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m gaugeTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameSeparatorThickness {
		return 0
	}
	return theme.DefaultTheme().Size(name)
}
