// Package config loads the gauge and power bar layout from a TOML file.
//
// Lookup order: the --config flag, ./txgauge.toml,
// $HOME/.config/txgauge/txgauge.toml, then the built-in dashboard.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"

	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/dashboard"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/logger"
	"github.com/roffe/txgauge/pkg/powerbar"
)

const (
	ConfigName = "txgauge"
	EnvPrefix  = "TXGAUGE"
)

type Config struct {
	LogLevel string          `mapstructure:"log_level"`
	Style    StyleConfig     `mapstructure:"style"`
	Gauges   []GaugeConfig   `mapstructure:"gauges"`
	Bars     []BarConfig     `mapstructure:"bars"`
	Derived  []DerivedConfig `mapstructure:"derived"`
}

// StyleConfig holds hex colors; empty entries keep the default palette.
type StyleConfig struct {
	Accent       string `mapstructure:"accent"`
	Warning      string `mapstructure:"warning"`
	Text         string `mapstructure:"text"`
	TickNeutral  string `mapstructure:"tick_neutral"`
	ReadoutValue string `mapstructure:"readout_value"`
	ReadoutUnits string `mapstructure:"readout_units"`
	Title        string `mapstructure:"title"`
	FaceInner    string `mapstructure:"face_inner"`
	FaceOuter    string `mapstructure:"face_outer"`
	Rim          string `mapstructure:"rim"`
	ArcTrack     string `mapstructure:"arc_track"`
	ArcGlow      string `mapstructure:"arc_glow"`
}

type GaugeConfig struct {
	ID              string   `mapstructure:"id"`
	Title           string   `mapstructure:"title"`
	Units           string   `mapstructure:"units"`
	Min             float64  `mapstructure:"min"`
	Max             float64  `mapstructure:"max"`
	StartAngle      *float64 `mapstructure:"start_angle"`
	SweepAngle      *float64 `mapstructure:"sweep_angle"`
	TickStep        *float64 `mapstructure:"tick_step"`
	WarningFraction *float64 `mapstructure:"warning_fraction"`
	LabelFormat     string   `mapstructure:"label_format"`
	Value           float64  `mapstructure:"value"`
}

type BarConfig struct {
	ID        string  `mapstructure:"id"`
	Label     string  `mapstructure:"label"`
	Units     string  `mapstructure:"units"`
	Min       float64 `mapstructure:"min"`
	Max       float64 `mapstructure:"max"`
	ColorLow  string  `mapstructure:"color_low"`
	ColorHigh string  `mapstructure:"color_high"`
	Value     float64 `mapstructure:"value"`
}

// DerivedConfig publishes op(first, second) on output, e.g. power from
// voltage and current.
type DerivedConfig struct {
	Output string `mapstructure:"output"`
	Op     string `mapstructure:"op"`
	First  string `mapstructure:"first"`
	Second string `mapstructure:"second"`
}

func ptr(v float64) *float64 { return &v }

// Default mirrors the original telemetry screen.
func Default() *Config {
	return &Config{
		LogLevel: logger.DefaultLevel,
		Gauges: []GaugeConfig{
			{ID: "speed", Title: "SPEED", Units: "km/h", Min: 0, Max: 100, TickStep: ptr(10), Value: 88.2},
		},
		Bars: []BarConfig{
			{ID: "battery_voltage", Label: "Battery Voltage", Units: "V", Min: 0, Max: 64.75, ColorLow: "#4dff00", ColorHigh: "#ccff00", Value: 51.8},
			{ID: "battery_current", Label: "Battery Current", Units: "A", Min: 0, Max: 57, ColorLow: "#ff9100", ColorHigh: "#ff4e00", Value: 28.5},
		},
	}
}

// Load reads the config through v, which may already carry bound flags.
// An empty path searches the default locations.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("log_level", logger.DefaultLevel)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/txgauge")
	}

	found := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		found = false
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if !found || (len(cfg.Gauges) == 0 && len(cfg.Bars) == 0) {
		def := Default()
		cfg.Gauges, cfg.Bars = def.Gauges, def.Bars
	}
	if found {
		logger.Debug().Str("file", v.ConfigFileUsed()).Msg("config loaded")
	}
	return cfg, nil
}

// GaugeStyle merges the configured colors over gauge.DefaultStyle.
func (c *Config) GaugeStyle() (gauge.Style, error) {
	st := gauge.DefaultStyle()
	fields := []struct {
		key string
		hex string
		dst *color.RGBA
	}{
		{"style.accent", c.Style.Accent, &st.Accent},
		{"style.warning", c.Style.Warning, &st.Warning},
		{"style.text", c.Style.Text, &st.Text},
		{"style.tick_neutral", c.Style.TickNeutral, &st.TickNeutral},
		{"style.readout_value", c.Style.ReadoutValue, &st.ReadoutValue},
		{"style.readout_units", c.Style.ReadoutUnits, &st.ReadoutUnits},
		{"style.title", c.Style.Title, &st.Title},
		{"style.face_inner", c.Style.FaceInner, &st.FaceInner},
		{"style.face_outer", c.Style.FaceOuter, &st.FaceOuter},
		{"style.rim", c.Style.Rim, &st.Rim},
		{"style.arc_track", c.Style.ArcTrack, &st.ArcTrack},
		{"style.arc_glow", c.Style.ArcGlow, &st.ArcGlow},
	}
	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		col, err := ParseColor(f.hex)
		if err != nil {
			return st, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = col
	}
	return st, nil
}

// Gauge converts one [[gauges]] entry, filling unset angles and steps.
func (g GaugeConfig) Gauge(style gauge.Style) gauge.GaugeConfig {
	cfg := gauge.DefaultConfig(g.Title, g.Units)
	cfg.Min, cfg.Max = g.Min, g.Max
	cfg.LabelFormat = g.LabelFormat
	cfg.Style = style
	if g.StartAngle != nil {
		cfg.StartAngle = *g.StartAngle
	}
	if g.SweepAngle != nil {
		cfg.SweepAngle = *g.SweepAngle
	}
	if g.TickStep != nil {
		cfg.TickStep = *g.TickStep
	} else {
		cfg.TickStep = (g.Max - g.Min) / 10
	}
	if g.WarningFraction != nil {
		cfg.WarningFraction = *g.WarningFraction
	}
	return cfg
}

// Bar converts one [[bars]] entry. Without color_low the bar takes the
// channel color of its id.
func (b BarConfig) Bar() (dashboard.BarConfig, error) {
	low := colors.GetColor(b.ID)
	if b.ColorLow != "" {
		var err error
		if low, err = ParseColor(b.ColorLow); err != nil {
			return dashboard.BarConfig{}, fmt.Errorf("bars.%s.color_low: %w", b.ID, err)
		}
	}
	high := low
	if b.ColorHigh != "" {
		var err error
		if high, err = ParseColor(b.ColorHigh); err != nil {
			return dashboard.BarConfig{}, fmt.Errorf("bars.%s.color_high: %w", b.ID, err)
		}
	}
	return dashboard.BarConfig{
		ID:        b.ID,
		Label:     b.Label,
		Units:     b.Units,
		Min:       b.Min,
		Max:       b.Max,
		ColorLow:  low,
		ColorHigh: high,
	}, nil
}

// Build creates a dashboard on bus with every configured gauge and bar set
// to its initial value, and registers the derived topics on bus.
func (c *Config) Build(bus *ebus.Bus) (*dashboard.Dashboard, error) {
	if bus == nil {
		bus = ebus.Default()
	}
	style, err := c.GaugeStyle()
	if err != nil {
		return nil, err
	}
	db := dashboard.New(bus)
	for _, g := range c.Gauges {
		if err := db.AddGauge(g.ID, g.Gauge(style)); err != nil {
			return nil, err
		}
		if err := db.SetValue(g.ID, g.Value); err != nil {
			return nil, err
		}
	}
	for _, b := range c.Bars {
		bc, err := b.Bar()
		if err != nil {
			return nil, err
		}
		if err := db.AddBar(bc, powerbar.New()); err != nil {
			return nil, err
		}
		if err := db.SetValue(b.ID, b.Value); err != nil {
			return nil, err
		}
	}
	for _, d := range c.Derived {
		agg, err := ebus.NewAggregator(d.Op, d.First, d.Second, d.Output)
		if err != nil {
			return nil, fmt.Errorf("derived %s: %w", d.Output, err)
		}
		bus.RegisterAggregator(agg)
	}
	return db, nil
}

// ParseColor reads "#rgb", "#rrggbb" or "#rrggbbaa" into a premultiplied color.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || s[0] != '#' || (len(s) != 4 && len(s) != 7 && len(s) != 9) {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	alpha := uint8(0xFF)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBAModel.Convert(color.NRGBA{R: r, G: g, B: b, A: alpha}).(color.RGBA), nil
}
