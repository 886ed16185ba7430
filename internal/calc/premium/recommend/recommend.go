package recommend

import (
	"fmt"
	"math"

	laser "Aperture/internal/calc/laser"
)

type EyewearInput struct {
	laser.Parameters
}

type EyewearResult struct {
	ExposureLevel float64        `json:"exposure_level"`
	OcularMPE     laser.MPEValue `json:"ocular_mpe"`
	RequiredOD    float64        `json:"required_od"`
	Notes         string         `json:"notes"`
}

// Eyewear returns the optical density that brings the beam at the
// observation distance down to the ocular MPE: OD = log10(H/MPE), rounded up
// to one decimal and never below zero.
func Eyewear(in EyewearInput) (EyewearResult, error) {
	if err := in.Validate(); err != nil {
		return EyewearResult{}, err
	}
	mpe := laser.EstimateMPE(in.WavelengthNm, in.ExposureTimeS).Ocular
	h, err := laser.IrradianceAt(in.PowerMW, in.BeamDiameterMM, in.DivergenceMrad, in.ObservationDistanceM)
	if err != nil {
		return EyewearResult{}, fmt.Errorf("exposure level: %w", err)
	}

	od := 0.0
	if h > mpe.Value {
		od = math.Ceil(math.Log10(h/mpe.Value)*10) / 10
	}
	notes := "No eyewear required at this distance."
	if od > 0 {
		notes = fmt.Sprintf("Eyewear rated OD %.1f or higher at %s.", od, laser.FormatWavelength(in.WavelengthNm))
	}
	return EyewearResult{
		ExposureLevel: h,
		OcularMPE:     mpe,
		RequiredOD:    od,
		Notes:         notes,
	}, nil
}
