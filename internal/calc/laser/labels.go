package laser

import "fmt"

// FormatPower prints power in W from 1000 mW upward, otherwise in mW.
func FormatPower(powerMW float64) string {
	if powerMW >= 1000 {
		return fmt.Sprintf("%.1f W", powerMW/1000)
	}
	return fmt.Sprintf("%.1f mW", powerMW)
}

func FormatWavelength(wavelengthNm float64) string {
	return fmt.Sprintf("%.1f nm", wavelengthNm)
}

// LabelsFor builds the warning label text for a product of class c.
func LabelsFor(c Class, wavelengthNm, powerMW float64) []string {
	radiation := "LASER RADIATION"
	if !ClassifyRegion(wavelengthNm).IsVisible() {
		radiation = "INVISIBLE LASER RADIATION"
	}
	product := c.Label() + " LASER PRODUCT"

	switch c {
	case Class1:
		return []string{product}
	case Class1M:
		return []string{
			radiation,
			"DO NOT VIEW DIRECTLY WITH OPTICAL INSTRUMENTS",
			product,
		}
	}

	var signal, warning string
	switch c {
	case Class2:
		signal, warning = "CAUTION", "DO NOT STARE INTO BEAM"
	case Class2M:
		signal, warning = "CAUTION", "DO NOT STARE INTO BEAM OR VIEW DIRECTLY WITH OPTICAL INSTRUMENTS"
	case Class3R:
		signal, warning = "WARNING", "AVOID DIRECT EYE EXPOSURE"
	case Class3B:
		signal, warning = "WARNING", "AVOID EXPOSURE TO BEAM"
	default:
		signal, warning = "DANGER", "AVOID EYE OR SKIN EXPOSURE TO DIRECT OR SCATTERED RADIATION"
	}
	return []string{
		signal,
		radiation,
		warning,
		fmt.Sprintf("Wavelength: %s", FormatWavelength(wavelengthNm)),
		fmt.Sprintf("Maximum output: %s", FormatPower(powerMW)),
		product,
	}
}
