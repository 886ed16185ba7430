package laser

type Region string

const (
	RegionUVC     Region = "UV-C"
	RegionUVB     Region = "UV-B"
	RegionUVA     Region = "UV-A"
	RegionVisible Region = "Visible"
	RegionNearIR  Region = "Near-IR"
	RegionMidIR   Region = "Mid-IR"
	RegionFarIR   Region = "Far-IR"
)

// Lower bounds are inclusive.
const (
	uvbStartNm     = 280.0
	uvaStartNm     = 315.0
	visibleStartNm = 400.0
	nearIRStartNm  = 700.0
	midIRStartNm   = 1400.0
	farIRStartNm   = 3000.0
)

func ClassifyRegion(wavelengthNm float64) Region {
	switch {
	case wavelengthNm < uvbStartNm:
		return RegionUVC
	case wavelengthNm < uvaStartNm:
		return RegionUVB
	case wavelengthNm < visibleStartNm:
		return RegionUVA
	case wavelengthNm < nearIRStartNm:
		return RegionVisible
	case wavelengthNm < midIRStartNm:
		return RegionNearIR
	case wavelengthNm < farIRStartNm:
		return RegionMidIR
	default:
		return RegionFarIR
	}
}

func (r Region) IsVisible() bool {
	return r == RegionVisible
}

func (r Region) IsUV() bool {
	return r == RegionUVA || r == RegionUVB || r == RegionUVC
}
