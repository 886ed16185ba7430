package autodesign

import (
	"fmt"
	"math"

	laser "Aperture/internal/calc/laser"
)

type PowerInput struct {
	WavelengthNm   float64 `json:"wavelength_nm"`
	BeamDiameterMM float64 `json:"beam_diameter_mm"`
	DivergenceMrad float64 `json:"divergence_mrad"`
	ExposureTimeS  float64 `json:"exposure_time_s"`
	DistanceM      float64 `json:"distance_m"`
}

type PowerResult struct {
	MaxPowerMW     float64        `json:"max_power_mw"`
	OcularMPE      laser.MPEValue `json:"ocular_mpe"`
	BeamDiameterMM float64        `json:"beam_diameter_at_distance_mm"`
	Class          laser.Class    `json:"class"`
	Notes          string         `json:"notes"`
}

// MaxSafePower sizes the output power so that irradiance at DistanceM does
// not exceed the ocular MPE, which makes DistanceM the NOHD.
func MaxSafePower(engine *laser.Engine, in PowerInput) (PowerResult, error) {
	probe := laser.Parameters{
		WavelengthNm:         in.WavelengthNm,
		BeamDiameterMM:       in.BeamDiameterMM,
		DivergenceMrad:       in.DivergenceMrad,
		ExposureTimeS:        in.ExposureTimeS,
		ObservationDistanceM: in.DistanceM,
	}
	if err := probe.Validate(); err != nil {
		return PowerResult{}, err
	}

	mpe := laser.EstimateMPE(in.WavelengthNm, in.ExposureTimeS).Ocular
	dMM := laser.BeamDiameterAt(in.BeamDiameterMM, in.DivergenceMrad, in.DistanceM)
	r := dMM / 20 // cm
	pMW := mpe.Value * math.Pi * r * r * 1000
	if pMW <= 0 || math.IsNaN(pMW) || math.IsInf(pMW, 0) {
		return PowerResult{}, fmt.Errorf("no finite power limit for this geometry")
	}

	class := engine.Classify(in.WavelengthNm, pMW, in.ExposureTimeS)
	return PowerResult{
		MaxPowerMW:     pMW,
		OcularMPE:      mpe,
		BeamDiameterMM: dMM,
		Class:          class,
		Notes:          fmt.Sprintf("Up to %s keeps the beam eye-safe beyond %.2f m.", laser.FormatPower(pMW), in.DistanceM),
	}, nil
}
