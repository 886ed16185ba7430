package laser

import "math"

type Unit string

const (
	UnitEnergyDensity Unit = "J/cm²"
	UnitPowerDensity  Unit = "W/cm²"
)

type MPEValue struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Family names the formula family an MPE was taken from.
type Family string

const (
	FamilyUV      Family = "uv"
	FamilyRetinal Family = "retinal"
	FamilyNearIR  Family = "near-ir"
	FamilyFarIR   Family = "far-ir"
)

type MPE struct {
	Ocular MPEValue `json:"ocular"`
	Skin   MPEValue `json:"skin"`
	Family Family   `json:"family"`
}

// ContinuousExposureS is where every family switches from J/cm² to W/cm².
// An exposure of exactly this duration is continuous.
const ContinuousExposureS = 10.0

// nearIRCap clamps the wavelength-corrected near-IR ocular limit.
const nearIRCap = 0.1

// regime is one row of a formula family: value = coeff * t^exp for t < below.
type regime struct {
	below float64
	coeff float64
	exp   float64
	unit  Unit
}

var (
	retinalOcular = [...]regime{
		{below: 18e-6, coeff: 5e-7, unit: UnitEnergyDensity},
		{below: ContinuousExposureS, coeff: 1.8e-3, exp: 0.75, unit: UnitEnergyDensity},
		{below: math.Inf(1), coeff: 10e-3, unit: UnitPowerDensity},
	}
	thermalSkin = [...]regime{
		{below: 100e-9, coeff: 2e-2, unit: UnitEnergyDensity},
		{below: ContinuousExposureS, coeff: 1.1, exp: 0.25, unit: UnitEnergyDensity},
		{below: math.Inf(1), coeff: 200e-3, unit: UnitPowerDensity},
	}
	farIRSurface = [...]regime{
		{below: 1e-9, coeff: 10e-3, unit: UnitEnergyDensity},
		{below: ContinuousExposureS, coeff: 0.56, exp: 0.25, unit: UnitEnergyDensity},
		{below: math.Inf(1), coeff: 100e-3, unit: UnitPowerDensity},
	}
	uvaOcular = [...]regime{{below: math.Inf(1), coeff: 1.0, unit: UnitEnergyDensity}}
	uvaSkin   = [...]regime{{below: math.Inf(1), coeff: 10.0, unit: UnitEnergyDensity}}
	uvbcBoth  = [...]regime{{below: math.Inf(1), coeff: 3e-3, unit: UnitEnergyDensity}}
)

// evaluate picks the first row whose bound exceeds t. The last row catches
// everything else, including +Inf.
func evaluate(rows []regime, t float64) MPEValue {
	if math.IsNaN(t) || t <= 0 {
		t = 0
	}
	for i, r := range rows {
		if t < r.below || i == len(rows)-1 {
			v := r.coeff
			if r.exp != 0 && !math.IsInf(t, 1) {
				v *= math.Pow(t, r.exp)
			}
			return MPEValue{Value: v, Unit: r.unit}
		}
	}
	// unreachable for non-empty tables
	return MPEValue{}
}

// nearIRCorrection is the reduced retinal absorption factor 10^((λ-700)/500).
func nearIRCorrection(wavelengthNm float64) float64 {
	return math.Pow(10, (wavelengthNm-nearIRStartNm)/500.0)
}

// EstimateMPE returns simplified ocular and skin exposure limits. The unit of
// each value follows the exposure-time regime that produced it.
func EstimateMPE(wavelengthNm, exposureTimeS float64) MPE {
	switch region := ClassifyRegion(wavelengthNm); region {
	case RegionUVC, RegionUVB:
		return MPE{
			Ocular: evaluate(uvbcBoth[:], exposureTimeS),
			Skin:   evaluate(uvbcBoth[:], exposureTimeS),
			Family: FamilyUV,
		}
	case RegionUVA:
		return MPE{
			Ocular: evaluate(uvaOcular[:], exposureTimeS),
			Skin:   evaluate(uvaSkin[:], exposureTimeS),
			Family: FamilyUV,
		}
	case RegionVisible:
		return MPE{
			Ocular: evaluate(retinalOcular[:], exposureTimeS),
			Skin:   evaluate(thermalSkin[:], exposureTimeS),
			Family: FamilyRetinal,
		}
	case RegionNearIR:
		ocular := evaluate(retinalOcular[:], exposureTimeS)
		ocular.Value = math.Min(ocular.Value*nearIRCorrection(wavelengthNm), nearIRCap)
		return MPE{
			Ocular: ocular,
			Skin:   evaluate(thermalSkin[:], exposureTimeS),
			Family: FamilyNearIR,
		}
	default:
		// Mid-IR shares the far-IR surface-absorption formulas.
		return MPE{
			Ocular: evaluate(farIRSurface[:], exposureTimeS),
			Skin:   evaluate(farIRSurface[:], exposureTimeS),
			Family: FamilyFarIR,
		}
	}
}
