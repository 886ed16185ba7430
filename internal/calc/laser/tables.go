package laser

import (
	"fmt"
	"io"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"
)

// ThresholdRule matches when power <= MaxPowerMW and, if MaxExposureS is set,
// exposure < MaxExposureS.
type ThresholdRule struct {
	MaxPowerMW   float64 `yaml:"max_power_mw" json:"max_power_mw"`
	MaxExposureS float64 `yaml:"max_exposure_s,omitempty" json:"max_exposure_s,omitempty"`
	Class        Class   `yaml:"class" json:"class"`
}

func (r ThresholdRule) matches(powerMW, exposureTimeS float64) bool {
	if powerMW > r.MaxPowerMW {
		return false
	}
	return r.MaxExposureS <= 0 || exposureTimeS < r.MaxExposureS
}

// ControlTier lists the measures a class adds on top of the class it inherits.
type ControlTier struct {
	Class    Class    `yaml:"class" json:"class"`
	Inherits Class    `yaml:"inherits,omitempty" json:"inherits,omitempty"`
	Measures []string `yaml:"measures" json:"measures"`
}

// Tables is the reference data the engine classifies against. Rules are
// evaluated in order and the first match wins; Fallback applies above the
// last rule.
type Tables struct {
	Version   string          `yaml:"version" json:"version"`
	Visible   []ThresholdRule `yaml:"visible" json:"visible"`
	Invisible []ThresholdRule `yaml:"invisible" json:"invisible"`
	Fallback  Class           `yaml:"fallback" json:"fallback"`
	Controls  []ControlTier   `yaml:"controls" json:"controls"`
}

// blinkReflexS is the aversion response time that Class 2/2M rely on.
const blinkReflexS = 0.25

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Version: "1.0.0",
		Visible: []ThresholdRule{
			{MaxPowerMW: 0.39, Class: Class1},
			{MaxPowerMW: 1, Class: Class1M},
			{MaxPowerMW: 1, MaxExposureS: blinkReflexS, Class: Class2},
			{MaxPowerMW: 5, MaxExposureS: blinkReflexS, Class: Class2M},
			{MaxPowerMW: 5, Class: Class3R},
			{MaxPowerMW: 500, Class: Class3B},
		},
		// No Class 2/2M: invisible beams give no blink reflex.
		Invisible: []ThresholdRule{
			{MaxPowerMW: 0.1, Class: Class1},
			{MaxPowerMW: 1, Class: Class1M},
			{MaxPowerMW: 5, Class: Class3R},
			{MaxPowerMW: 500, Class: Class3B},
		},
		Fallback: Class4,
		Controls: []ControlTier{
			{Class: Class1, Measures: []string{
				"No special controls required under normal use",
			}},
			{Class: Class1M, Measures: []string{
				"Do not view the beam with magnifying optical instruments (binoculars, telescopes)",
			}},
			{Class: Class2, Measures: []string{
				"Do not stare into the beam",
				"Do not direct the beam at people or vehicles",
			}},
			{Class: Class2M, Inherits: Class2, Measures: []string{
				"Do not view the beam with magnifying optical instruments",
			}},
			{Class: Class3R, Measures: []string{
				"Avoid direct eye exposure to the beam",
				"Terminate the beam at the end of its useful path",
				"Restrict operation to trained personnel",
			}},
			{Class: Class3B, Inherits: Class3R, Measures: []string{
				"Appoint a Laser Safety Officer (LSO)",
				"Wear laser safety eyewear of adequate optical density",
				"Establish a controlled laser area with warning signs",
				"Fit a key switch and emission indicator",
				"Connect a remote interlock",
				"Remove reflective objects from the beam path",
			}},
			{Class: Class4, Inherits: Class3B, Measures: []string{
				"Protect skin from direct and diffuse exposure",
				"Use fire-resistant beam stops and keep flammable materials away",
				"Fit door interlocks at laser area entrances",
				"Evaluate diffuse reflection hazards",
				"Extract laser-generated air contaminants",
			}},
		},
	}
}

// LoadTables decodes a YAML table set and validates it.
func LoadTables(r io.Reader) (Tables, error) {
	var t Tables
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return Tables{}, fmt.Errorf("%w: failed to decode YAML: %v", ErrInvalidTables, err)
	}
	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// LoadEngineFile builds an engine from a YAML table file. An empty path
// selects the built-in tables.
func LoadEngineFile(path string) (*Engine, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := LoadTables(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewEngine(t)
}

func (t Tables) Validate() error {
	if _, err := semver.NewVersion(t.Version); err != nil {
		return fmt.Errorf("%w: version %q: %v", ErrInvalidTables, t.Version, err)
	}
	if err := validateRules("visible", t.Visible, t.Fallback); err != nil {
		return err
	}
	if err := validateRules("invisible", t.Invisible, t.Fallback); err != nil {
		return err
	}

	seen := make(map[Class]bool, len(t.Controls))
	for _, tier := range t.Controls {
		if !tier.Class.Valid() {
			return fmt.Errorf("%w: controls: unknown class %q", ErrInvalidTables, tier.Class)
		}
		if seen[tier.Class] {
			return fmt.Errorf("%w: controls: class %s listed twice", ErrInvalidTables, tier.Class)
		}
		if tier.Inherits != "" && !seen[tier.Inherits] {
			return fmt.Errorf("%w: controls: class %s inherits %q which is not listed before it", ErrInvalidTables, tier.Class, tier.Inherits)
		}
		seen[tier.Class] = true
	}
	for _, c := range classOrder {
		if !seen[c] {
			return fmt.Errorf("%w: controls: class %s missing", ErrInvalidTables, c)
		}
	}
	return t.validateEscalation()
}

// validateEscalation keeps each high-power tier a superset of the one below:
// 3B carries every 3R measure and 4 carries every 3B measure.
func (t Tables) validateEscalation() error {
	pairs := [][2]Class{{Class3R, Class3B}, {Class3B, Class4}}
	for _, p := range pairs {
		have := make(map[string]bool)
		for _, m := range t.ControlsFor(p[1]) {
			have[m] = true
		}
		for _, m := range t.ControlsFor(p[0]) {
			if !have[m] {
				return fmt.Errorf("%w: controls: class %s must include class %s measure %q (not a superset)", ErrInvalidTables, p[1], p[0], m)
			}
		}
	}
	return nil
}

// validateRules keeps thresholds ascending and classes non-decreasing, which
// makes classification monotonic in power.
func validateRules(name string, rules []ThresholdRule, fallback Class) error {
	if len(rules) == 0 {
		return fmt.Errorf("%w: %s: no rules", ErrInvalidTables, name)
	}
	if !fallback.Valid() {
		return fmt.Errorf("%w: fallback class %q", ErrInvalidTables, fallback)
	}
	for i, r := range rules {
		if !r.Class.Valid() {
			return fmt.Errorf("%w: %s[%d]: unknown class %q", ErrInvalidTables, name, i, r.Class)
		}
		if r.MaxPowerMW < 0 || r.MaxExposureS < 0 {
			return fmt.Errorf("%w: %s[%d]: negative threshold", ErrInvalidTables, name, i)
		}
		if i == 0 {
			continue
		}
		prev := rules[i-1]
		if r.MaxPowerMW < prev.MaxPowerMW {
			return fmt.Errorf("%w: %s[%d]: power thresholds must ascend", ErrInvalidTables, name, i)
		}
		if r.Class.Rank() < prev.Class.Rank() {
			return fmt.Errorf("%w: %s[%d]: class %s ranks below %s", ErrInvalidTables, name, i, r.Class, prev.Class)
		}
	}
	if fallback.Rank() < rules[len(rules)-1].Class.Rank() {
		return fmt.Errorf("%w: fallback %s ranks below %s", ErrInvalidTables, fallback, rules[len(rules)-1].Class)
	}
	return nil
}

// Classify assigns a hazard class from the visible or invisible rule set.
func (t Tables) Classify(wavelengthNm, powerMW, exposureTimeS float64) Class {
	rules := t.Invisible
	if ClassifyRegion(wavelengthNm).IsVisible() {
		rules = t.Visible
	}
	for _, r := range rules {
		if r.matches(powerMW, exposureTimeS) {
			return r.Class
		}
	}
	return t.Fallback
}

// ControlsFor resolves the control measures for c, inherited ones first.
func (t Tables) ControlsFor(c Class) []string {
	tiers := make(map[Class]ControlTier, len(t.Controls))
	for _, tier := range t.Controls {
		tiers[tier.Class] = tier
	}
	var out []string
	var walk func(Class, int)
	walk = func(k Class, depth int) {
		tier, ok := tiers[k]
		if !ok || depth > len(classOrder) {
			return
		}
		if tier.Inherits != "" {
			walk(tier.Inherits, depth+1)
		}
		out = append(out, tier.Measures...)
	}
	walk(c, 0)
	return out
}
