package laser

import (
	"fmt"
	"math"
)

type HazardDistance struct {
	Meters float64 `json:"meters"`
}

// IsHazardous reports whether a hazard zone extends beyond the aperture.
func (h HazardDistance) IsHazardous() bool {
	return h.Meters > 0
}

// Unit conversions used by the beam model.
const (
	mwToW     = 1e-3
	mmToCm    = 0.1
	mradToRad = 1e-3
	mToCm     = 100.0
	cmToM     = 0.01
)

// BeamDiameterAt returns the beam diameter in mm at distanceM, using the
// small-angle linear spread d(z) = d0 + z*θ.
func BeamDiameterAt(beamDiameterMM, divergenceMrad, distanceM float64) float64 {
	d0 := beamDiameterMM * mmToCm
	theta := divergenceMrad * mradToRad
	z := distanceM * mToCm
	return (d0 + z*theta) / mmToCm
}

// IrradianceAt returns irradiance in W/cm² at distanceM from the aperture.
func IrradianceAt(powerMW, beamDiameterMM, divergenceMrad, distanceM float64) (float64, error) {
	d := BeamDiameterAt(beamDiameterMM, divergenceMrad, distanceM) * mmToCm
	if d <= 0 || math.IsNaN(d) {
		return 0, fmt.Errorf("%w: d0=%gmm θ=%gmrad z=%gm", ErrDegenerateBeam, beamDiameterMM, divergenceMrad, distanceM)
	}
	p := powerMW * mwToW
	r := d / 2
	return p / (math.Pi * r * r), nil
}

// SolveNOHD returns the distance at which irradiance falls to mpe. It is the
// exact inverse of IrradianceAt: z = (sqrt(4P/(π·MPE)) - d0) / θ.
//
// A zero distance is a legitimate result: it is returned when the divergence
// or MPE is non-positive (no finite distance can be computed) and when the
// beam is already at or below the MPE at the aperture.
func SolveNOHD(powerMW, beamDiameterMM, divergenceMrad float64, mpe MPEValue) (HazardDistance, error) {
	theta := divergenceMrad * mradToRad
	if theta <= 0 || mpe.Value <= 0 {
		return HazardDistance{}, nil
	}

	exit, err := IrradianceAt(powerMW, beamDiameterMM, divergenceMrad, 0)
	if err != nil {
		return HazardDistance{}, err
	}
	if exit <= mpe.Value {
		return HazardDistance{}, nil
	}

	p := powerMW * mwToW
	d0 := beamDiameterMM * mmToCm
	spot := 4 * p / (math.Pi * mpe.Value)
	if spot <= d0*d0 {
		return HazardDistance{}, nil
	}

	cm := (math.Sqrt(spot) - d0) / theta
	if math.IsInf(cm, 0) || math.IsNaN(cm) {
		return HazardDistance{}, fmt.Errorf("%w: hazard distance overflows for θ=%gmrad", ErrDegenerateBeam, divergenceMrad)
	}
	return HazardDistance{Meters: math.Max(0, cm*cmToM)}, nil
}
