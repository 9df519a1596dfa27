package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roffe/txgauge/pkg/config"
	"github.com/roffe/txgauge/pkg/dashboard"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/logger"
)

var (
	flagConfig   string
	flagLogLevel string
	flagValues   []string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	rootCmd := &cobra.Command{
		Use:   "txgauge",
		Short: "txgauge - analogue gauge and power bar renderer",
		Long: `txgauge lays out analogue telemetry gauges and linear power bars
from a TOML description and renders them to PNG, to the terminal as a
primitive listing, or live in a window.

Without a config file the built-in dashboard is used: a SPEED gauge and
the battery voltage and current bars.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.SetLevel(v.GetString("log_level"))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "config file (default ./txgauge.toml)")
	pf.StringVar(&flagLogLevel, "log-level", logger.DefaultLevel, "log level (trace, debug, info, warn, error)")
	pf.StringArrayVar(&flagValues, "value", nil, "set a value before rendering, id=value (repeatable)")
	if err := v.BindPFlag("log_level", pf.Lookup("log-level")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		newRenderCmd(v),
		newDumpCmd(v),
		newViewCmd(v),
	)
	return rootCmd
}

// load reads the config and builds the dashboard on its own bus, applying
// any --value overrides.
func load(v *viper.Viper) (*config.Config, *dashboard.Dashboard, *ebus.Bus, error) {
	cfg, err := config.Load(v, flagConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return nil, nil, nil, err
	}
	bus := ebus.New()
	db, err := cfg.Build(bus)
	if err != nil {
		bus.Close()
		return nil, nil, nil, err
	}
	for _, kv := range flagValues {
		id, val, err := parseValue(kv)
		if err != nil {
			bus.Close()
			return nil, nil, nil, err
		}
		if err := db.SetValue(id, val); err != nil {
			bus.Close()
			return nil, nil, nil, err
		}
	}
	return cfg, db, bus, nil
}

func parseValue(kv string) (string, float64, error) {
	id, raw, ok := strings.Cut(kv, "=")
	if !ok || id == "" {
		return "", 0, fmt.Errorf("invalid --value %q, want id=value", kv)
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --value %q: %w", kv, err)
	}
	return strings.TrimSpace(id), val, nil
}
