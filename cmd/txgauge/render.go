package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/roffe/txgauge/pkg/dashboard"
	"github.com/roffe/txgauge/pkg/logger"
	"github.com/roffe/txgauge/pkg/primitive"
	"github.com/roffe/txgauge/pkg/raster"
)

func newRenderCmd(v *viper.Viper) *cobra.Command {
	var (
		out  string
		size int
	)
	cmd := &cobra.Command{
		Use:   "render [id...]",
		Short: "Render gauges and bars to PNG files",
		Long: `Render writes one PNG per gauge and bar into the output directory,
named after its id. With arguments only the named ids are rendered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if size <= 0 {
				return fmt.Errorf("invalid --size %d", size)
			}
			_, db, bus, err := load(v)
			if err != nil {
				return err
			}
			defer bus.Close()

			if err := os.MkdirAll(out, 0o755); err != nil {
				return err
			}
			fonts, err := raster.LoadGoFonts()
			if err != nil {
				return err
			}
			defer fonts.Close()

			return renderAll(db, selectIDs(args), out, size, fonts)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	cmd.Flags().IntVarP(&size, "size", "s", 400, "gauge image size in pixels")
	return cmd
}

type selection map[string]bool

func selectIDs(args []string) selection {
	if len(args) == 0 {
		return nil
	}
	sel := make(selection, len(args))
	for _, a := range args {
		sel[a] = true
	}
	return sel
}

func (s selection) has(id string) bool { return s == nil || s[id] }

func renderAll(db *dashboard.Dashboard, sel selection, out string, size int, fonts *raster.Fonts) error {
	var g errgroup.Group
	g.SetLimit(4)
	for _, id := range db.Gauges() {
		if !sel.has(id) {
			continue
		}
		g.Go(func() error {
			prims, err := db.Render(id)
			if err != nil {
				return err
			}
			return writePNG(filepath.Join(out, id+".png"), prims, size, size, raster.GaugeBox, fonts)
		})
	}
	for _, id := range db.Bars() {
		if !sel.has(id) {
			continue
		}
		g.Go(func() error {
			prims, err := db.RenderBar(id)
			if err != nil {
				return err
			}
			h, err := db.BarHeight(id)
			if err != nil {
				return err
			}
			box := raster.BarBox(barTrackWidth(prims), h, 10)
			scale := float64(size) / raster.GaugeBox.Width
			w, ph := box.PixelSize(scale)
			return writePNG(filepath.Join(out, id+".png"), prims, w, ph, box, fonts)
		})
	}
	return g.Wait()
}

// barTrackWidth reads the track width off the bar background rect.
func barTrackWidth(prims []primitive.Primitive) float64 {
	for _, p := range prims {
		if r, ok := p.(primitive.Rect); ok {
			return r.Width
		}
	}
	return 200
}

func writePNG(path string, prims []primitive.Primitive, w, h int, box raster.Box, fonts *raster.Fonts) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := raster.WritePNG(f, prims, w, h, box, fonts, raster.Background); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Info().Str("file", path).Int("width", w).Int("height", h).Msg("rendered")
	return nil
}
