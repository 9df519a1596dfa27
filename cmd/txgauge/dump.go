package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roffe/txgauge/pkg/dump"
)

func newDumpCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [id...]",
		Short: "Print the primitives of gauges and bars",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, bus, err := load(v)
			if err != nil {
				return err
			}
			defer bus.Close()

			sel := selectIDs(args)
			w := cmd.OutOrStdout()
			for _, id := range db.Gauges() {
				if !sel.has(id) {
					continue
				}
				prims, err := db.Render(id)
				if err != nil {
					return err
				}
				if err := dump.Write(w, id, prims); err != nil {
					return err
				}
			}
			for _, id := range db.Bars() {
				if !sel.has(id) {
					continue
				}
				prims, err := db.RenderBar(id)
				if err != nil {
					return err
				}
				if err := dump.Write(w, id, prims); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
