package main

import (
	"encoding/json"
	"fmt"
	"io"

	laser "Aperture/internal/calc/laser"
	"github.com/spf13/cobra"
)

var (
	calcBeam beamFlags
	calcJSON bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Evaluate a laser source",
	Example: `  aperture calc --preset HeNe --diameter 1 --distance 2
  aperture calc -w 1064 -p 1000 -d 5 --divergence 0.5 -t 1 --frequency 10 --pulse-duration 1e-8`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, err := calcBeam.resolve(cmd)
		if err != nil {
			return err
		}
		engine, err := loadEngine()
		if err != nil {
			return err
		}
		res, err := engine.Calculate(in)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if calcJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		printSummary(out, res)
		return nil
	},
}

func init() {
	calcBeam.register(calcCmd.Flags())
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "print the full result as JSON")
	rootCmd.AddCommand(calcCmd)
}

func printSummary(w io.Writer, res laser.Result) {
	fmt.Fprintf(w, "Class %s  %s\n", res.Class, res.ClassDescription)
	fmt.Fprintf(w, "Region       %s\n", res.Region)
	fmt.Fprintf(w, "Ocular MPE   %.3e %s\n", res.OcularMPE.Value, res.OcularMPE.Unit)
	fmt.Fprintf(w, "Skin MPE     %.3e %s\n", res.SkinMPE.Value, res.SkinMPE.Unit)
	fmt.Fprintf(w, "NOHD         %.2f m\n", res.OcularNOHD.Meters)
	fmt.Fprintf(w, "NSHD         %.2f m\n", res.SkinNOHD.Meters)
	fmt.Fprintf(w, "Irradiance   %.3e W/cm² at %.2f m\n", res.IrradianceWCm2, res.ObservationDistanceM)
	if len(res.Controls) > 0 {
		fmt.Fprintln(w, "Controls:")
		for i, c := range res.Controls {
			fmt.Fprintf(w, "  %d. %s\n", i+1, c)
		}
	}
}
