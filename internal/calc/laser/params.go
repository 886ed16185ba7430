package laser

import (
	"fmt"
	"math"
)

type Parameters struct {
	WavelengthNm         float64 `json:"wavelength_nm"`
	PowerMW              float64 `json:"power_mw"`
	BeamDiameterMM       float64 `json:"beam_diameter_mm"`
	DivergenceMrad       float64 `json:"divergence_mrad"`
	ExposureTimeS        float64 `json:"exposure_time_s"`
	IsPulsed             bool    `json:"is_pulsed"`
	PulseFrequencyHz     float64 `json:"pulse_frequency_hz,omitempty"`
	PulseDurationS       float64 `json:"pulse_duration_s,omitempty"`
	ObservationDistanceM float64 `json:"observation_distance_m"`
}

func invalid(field string, v float64, rule string) error {
	return fmt.Errorf("%w: %s=%g %s", ErrInvalidInput, field, v, rule)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate rejects inputs the formulas are not defined for.
func (p Parameters) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"wavelength_nm", p.WavelengthNm},
		{"beam_diameter_mm", p.BeamDiameterMM},
		{"exposure_time_s", p.ExposureTimeS},
	}
	for _, f := range positive {
		if !finite(f.v) || f.v <= 0 {
			return invalid(f.name, f.v, "must be positive")
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"power_mw", p.PowerMW},
		{"divergence_mrad", p.DivergenceMrad},
		{"observation_distance_m", p.ObservationDistanceM},
	}
	for _, f := range nonNegative {
		if !finite(f.v) || f.v < 0 {
			return invalid(f.name, f.v, "must not be negative")
		}
	}

	if p.IsPulsed {
		if !finite(p.PulseFrequencyHz) || p.PulseFrequencyHz <= 0 {
			return invalid("pulse_frequency_hz", p.PulseFrequencyHz, "must be positive for a pulsed laser")
		}
		if !finite(p.PulseDurationS) || p.PulseDurationS <= 0 {
			return invalid("pulse_duration_s", p.PulseDurationS, "must be positive for a pulsed laser")
		}
	}
	return nil
}
