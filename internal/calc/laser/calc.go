package laser

import (
	"fmt"
	"math"
)

type PulseTrain struct {
	PulseCount           float64  `json:"pulse_count"`
	PulseEnergyMJ        float64  `json:"pulse_energy_mj"`
	PeakPowerW           float64  `json:"peak_power_w"`
	SinglePulseOcular    MPEValue `json:"single_pulse_ocular_mpe"`
	RepetitiveCorrection float64  `json:"repetitive_correction"`
}

type Result struct {
	Region                 Region         `json:"region"`
	MPEFamily              Family         `json:"mpe_family"`
	OcularMPE              MPEValue       `json:"ocular_mpe"`
	SkinMPE                MPEValue       `json:"skin_mpe"`
	OcularNOHD             HazardDistance `json:"ocular_nohd"`
	SkinNOHD               HazardDistance `json:"skin_nohd"`
	ObservationDistanceM   float64        `json:"observation_distance_m"`
	BeamDiameterAtDistance float64        `json:"beam_diameter_at_distance_mm"`
	IrradianceWCm2         float64        `json:"irradiance_w_cm2"`
	Class                  Class          `json:"class"`
	ClassDescription       string         `json:"class_description"`
	Controls               []string       `json:"controls"`
	Labels                 []string       `json:"labels"`
	Pulse                  *PulseTrain    `json:"pulse,omitempty"`
	Notes                  string         `json:"notes"`
}

// Engine runs the hazard pipeline against one table set. The zero value is
// not usable; use NewEngine or Default.
type Engine struct {
	tables Tables
}

func NewEngine(t Tables) (*Engine, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &Engine{tables: t}, nil
}

// Default returns an engine over DefaultTables.
func Default() *Engine {
	return &Engine{tables: DefaultTables()}
}

func (e *Engine) Tables() Tables {
	return e.tables
}

func (e *Engine) Classify(wavelengthNm, powerMW, exposureTimeS float64) Class {
	return e.tables.Classify(wavelengthNm, powerMW, exposureTimeS)
}

func (e *Engine) ControlsFor(c Class) []string {
	return e.tables.ControlsFor(c)
}

// Calculate runs the pipeline. It either returns a fully populated Result or
// an error.
func (e *Engine) Calculate(in Parameters) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	mpe := EstimateMPE(in.WavelengthNm, in.ExposureTimeS)

	ocular, err := SolveNOHD(in.PowerMW, in.BeamDiameterMM, in.DivergenceMrad, mpe.Ocular)
	if err != nil {
		return Result{}, fmt.Errorf("ocular NOHD: %w", err)
	}
	skin, err := SolveNOHD(in.PowerMW, in.BeamDiameterMM, in.DivergenceMrad, mpe.Skin)
	if err != nil {
		return Result{}, fmt.Errorf("skin NOHD: %w", err)
	}

	irradiance, err := IrradianceAt(in.PowerMW, in.BeamDiameterMM, in.DivergenceMrad, in.ObservationDistanceM)
	if err != nil {
		return Result{}, fmt.Errorf("irradiance: %w", err)
	}

	class := e.Classify(in.WavelengthNm, in.PowerMW, in.ExposureTimeS)

	res := Result{
		Region:                 ClassifyRegion(in.WavelengthNm),
		MPEFamily:              mpe.Family,
		OcularMPE:              mpe.Ocular,
		SkinMPE:                mpe.Skin,
		OcularNOHD:             ocular,
		SkinNOHD:               skin,
		ObservationDistanceM:   in.ObservationDistanceM,
		BeamDiameterAtDistance: BeamDiameterAt(in.BeamDiameterMM, in.DivergenceMrad, in.ObservationDistanceM),
		IrradianceWCm2:         irradiance,
		Class:                  class,
		ClassDescription:       class.Description(),
		Controls:               e.ControlsFor(class),
		Labels:                 LabelsFor(class, in.WavelengthNm, in.PowerMW),
		Notes:                  "Simplified IEC 60825-1 approximation. Not a substitute for a Laser Safety Officer assessment.",
	}
	if in.IsPulsed {
		res.Pulse = pulseTrain(in)
	}
	return res, nil
}

// Calculate runs the pipeline with the built-in tables.
func Calculate(in Parameters) (Result, error) {
	return Default().Calculate(in)
}

// Classify uses the built-in thresholds.
func Classify(wavelengthNm, powerMW, exposureTimeS float64) Class {
	return DefaultTables().Classify(wavelengthNm, powerMW, exposureTimeS)
}

// ControlsFor uses the built-in control measures.
func ControlsFor(c Class) []string {
	return DefaultTables().ControlsFor(c)
}

// pulseTrain summarises a repetitively pulsed exposure. The core MPEs are
// left untouched; RepetitiveCorrection is C5 = N^-1/4.
func pulseTrain(in Parameters) *PulseTrain {
	n := math.Max(1, in.PulseFrequencyHz*in.ExposureTimeS)
	energyJ := in.PowerMW * mwToW / in.PulseFrequencyHz
	return &PulseTrain{
		PulseCount:           n,
		PulseEnergyMJ:        energyJ * 1e3,
		PeakPowerW:           energyJ / in.PulseDurationS,
		SinglePulseOcular:    EstimateMPE(in.WavelengthNm, in.PulseDurationS).Ocular,
		RepetitiveCorrection: math.Pow(n, -0.25),
	}
}
