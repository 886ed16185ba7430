package main

import (
	laser "Aperture/internal/calc/laser"
	"Aperture/internal/calc/presets"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// beamFlags holds the source description shared by calc and report.
type beamFlags struct {
	preset string
	params laser.Parameters
}

func (b *beamFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&b.preset, "preset", "", "start from a named source (see 'aperture presets')")
	fs.Float64VarP(&b.params.WavelengthNm, "wavelength", "w", 0, "wavelength in nm")
	fs.Float64VarP(&b.params.PowerMW, "power", "p", 0, "average output power in mW")
	fs.Float64VarP(&b.params.BeamDiameterMM, "diameter", "d", 0, "beam diameter at the aperture in mm")
	fs.Float64Var(&b.params.DivergenceMrad, "divergence", 0, "full-angle divergence in mrad")
	fs.Float64VarP(&b.params.ExposureTimeS, "exposure", "t", 0.25, "exposure duration in s")
	fs.Float64Var(&b.params.ObservationDistanceM, "distance", 0, "observation distance in m")
	fs.Float64Var(&b.params.PulseFrequencyHz, "frequency", 0, "pulse repetition frequency in Hz (implies pulsed)")
	fs.Float64Var(&b.params.PulseDurationS, "pulse-duration", 0, "single pulse duration in s")
}

// resolve applies the preset and then any flags set explicitly on the
// command line.
func (b *beamFlags) resolve(cmd *cobra.Command) (laser.Parameters, error) {
	p := b.params
	if b.preset != "" {
		preset, err := presets.Lookup(b.preset)
		if err != nil {
			return laser.Parameters{}, err
		}
		p = preset.Apply(p)
		fs := cmd.Flags()
		if fs.Changed("wavelength") {
			p.WavelengthNm = b.params.WavelengthNm
		}
		if fs.Changed("power") {
			p.PowerMW = b.params.PowerMW
		}
		if fs.Changed("divergence") {
			p.DivergenceMrad = b.params.DivergenceMrad
		}
	}
	p.IsPulsed = p.PulseFrequencyHz > 0
	return p, nil
}

func loadEngine() (*laser.Engine, error) {
	e, err := laser.LoadEngineFile(tablesPath)
	if err != nil {
		return nil, err
	}
	if tablesPath != "" {
		log.Debug().Str("path", tablesPath).Str("version", e.Tables().Version).Msg("loaded classification tables")
	}
	return e, nil
}
