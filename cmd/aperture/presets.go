package main

import (
	"fmt"
	"text/tabwriter"

	laser "Aperture/internal/calc/laser"
	"Aperture/internal/calc/presets"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in laser sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tWAVELENGTH\tPOWER\tDIVERGENCE")
		for _, p := range presets.All() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f mrad\n", p.Name, laser.FormatWavelength(p.WavelengthNm), laser.FormatPower(p.TypicalPowerMW), p.DivergenceMrad)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
