package presets

import (
	"fmt"
	"strings"

	laser "Aperture/internal/calc/laser"
)

type Preset struct {
	Name           string  `json:"name"`
	WavelengthNm   float64 `json:"wavelength_nm"`
	TypicalPowerMW float64 `json:"typical_power_mw"`
	DivergenceMrad float64 `json:"divergence_mrad"`
}

// All returns the built-in laser sources. Callers get their own copy.
func All() []Preset {
	return []Preset{
		{Name: "HeNe", WavelengthNm: 632.8, TypicalPowerMW: 5, DivergenceMrad: 1.0},
		{Name: "Red diode pointer", WavelengthNm: 650, TypicalPowerMW: 1, DivergenceMrad: 1.5},
		{Name: "Green DPSS", WavelengthNm: 532, TypicalPowerMW: 5, DivergenceMrad: 1.2},
		{Name: "Blue diode", WavelengthNm: 445, TypicalPowerMW: 1000, DivergenceMrad: 1.5},
		{Name: "Violet diode", WavelengthNm: 405, TypicalPowerMW: 100, DivergenceMrad: 1.0},
		{Name: "Argon ion", WavelengthNm: 514.5, TypicalPowerMW: 1000, DivergenceMrad: 0.8},
		{Name: "Nd:YAG", WavelengthNm: 1064, TypicalPowerMW: 10000, DivergenceMrad: 0.5},
		{Name: "808 nm diode", WavelengthNm: 808, TypicalPowerMW: 2000, DivergenceMrad: 5},
		{Name: "1550 nm fiber", WavelengthNm: 1550, TypicalPowerMW: 100, DivergenceMrad: 0.3},
		{Name: "Er:YAG", WavelengthNm: 2940, TypicalPowerMW: 5000, DivergenceMrad: 3},
		{Name: "CO2", WavelengthNm: 10600, TypicalPowerMW: 40000, DivergenceMrad: 2},
		{Name: "KrF excimer", WavelengthNm: 248, TypicalPowerMW: 10000, DivergenceMrad: 2},
	}
}

// Lookup finds a preset by name, ignoring case.
func Lookup(name string) (Preset, error) {
	for _, p := range All() {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q", name)
}

// Apply pre-fills wavelength, power and divergence. Everything else in base
// is kept.
func (p Preset) Apply(base laser.Parameters) laser.Parameters {
	base.WavelengthNm = p.WavelengthNm
	base.PowerMW = p.TypicalPowerMW
	base.DivergenceMrad = p.DivergenceMrad
	return base
}
