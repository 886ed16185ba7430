package report

import (
	"fmt"
	"strings"

	laser "Aperture/internal/calc/laser"
)

const Heading = "LASER SAFETY CALCULATION REPORT"

type section struct {
	title string
	lines []string
}

func mpeLine(label string, m laser.MPEValue) string {
	return fmt.Sprintf("%s: %.3e %s", label, m.Value, m.Unit)
}

func distanceLine(label string, h laser.HazardDistance) string {
	if !h.IsHazardous() {
		return fmt.Sprintf("%s: 0.00 m (no hazard zone beyond the aperture)", label)
	}
	return fmt.Sprintf("%s: %.2f m", label, h.Meters)
}

func numbered(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = fmt.Sprintf("%d. %s", i+1, s)
	}
	return out
}

func sections(in laser.Parameters, res laser.Result) []section {
	params := []string{
		fmt.Sprintf("Wavelength: %s (%s)", laser.FormatWavelength(in.WavelengthNm), res.Region),
		fmt.Sprintf("Power: %s", laser.FormatPower(in.PowerMW)),
		fmt.Sprintf("Beam diameter: %.2f mm", in.BeamDiameterMM),
		fmt.Sprintf("Divergence: %.2f mrad", in.DivergenceMrad),
		fmt.Sprintf("Exposure time: %g s", in.ExposureTimeS),
		fmt.Sprintf("Observation distance: %.2f m", in.ObservationDistanceM),
	}
	if in.IsPulsed {
		params = append(params,
			fmt.Sprintf("Pulse frequency: %g Hz", in.PulseFrequencyHz),
			fmt.Sprintf("Pulse duration: %g s", in.PulseDurationS),
		)
	} else {
		params = append(params, "Mode: continuous wave")
	}

	out := []section{
		{title: "INPUT PARAMETERS", lines: params},
		{title: "MAXIMUM PERMISSIBLE EXPOSURE (MPE)", lines: []string{
			mpeLine("Ocular", res.OcularMPE),
			mpeLine("Skin", res.SkinMPE),
			fmt.Sprintf("Formula family: %s", res.MPEFamily),
		}},
		{title: "NOMINAL HAZARD DISTANCE (NOHD)", lines: []string{
			distanceLine("Ocular (NOHD)", res.OcularNOHD),
			distanceLine("Skin (NSHD)", res.SkinNOHD),
		}},
		{title: "IRRADIANCE", lines: []string{
			fmt.Sprintf("Beam diameter at %.2f m: %.2f mm", res.ObservationDistanceM, res.BeamDiameterAtDistance),
			fmt.Sprintf("Irradiance at %.2f m: %.3e W/cm²", res.ObservationDistanceM, res.IrradianceWCm2),
		}},
		{title: "CLASSIFICATION", lines: []string{
			fmt.Sprintf("Class %s: %s", res.Class, res.ClassDescription),
		}},
		{title: "CONTROL MEASURES", lines: numbered(res.Controls)},
		{title: "WARNING LABELS", lines: res.Labels},
	}
	if p := res.Pulse; p != nil {
		out = append(out, section{title: "PULSE TRAIN", lines: []string{
			fmt.Sprintf("Pulses in exposure: %g", p.PulseCount),
			fmt.Sprintf("Energy per pulse: %.3g mJ", p.PulseEnergyMJ),
			fmt.Sprintf("Peak power: %.3g W", p.PeakPowerW),
			mpeLine("Single-pulse ocular MPE", p.SinglePulseOcular),
			fmt.Sprintf("Repetitive-pulse correction C5: %.3f", p.RepetitiveCorrection),
		}})
	}
	return out
}

// Export renders the result as plain text. The output depends only on its
// arguments.
func Export(in laser.Parameters, res laser.Result) string {
	var b strings.Builder
	b.WriteString(Heading + "\n")
	b.WriteString(strings.Repeat("=", len(Heading)) + "\n")
	for _, s := range sections(in, res) {
		b.WriteString("\n" + s.title + "\n")
		b.WriteString(strings.Repeat("-", len(s.title)) + "\n")
		for _, l := range s.lines {
			b.WriteString("  " + l + "\n")
		}
	}
	if res.Notes != "" {
		b.WriteString("\n" + res.Notes + "\n")
	}
	return b.String()
}
