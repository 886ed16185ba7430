package laser

type Class string

const (
	Class1  Class = "1"
	Class1M Class = "1M"
	Class2  Class = "2"
	Class2M Class = "2M"
	Class3R Class = "3R"
	Class3B Class = "3B"
	Class4  Class = "4"
)

// classOrder lists classes from lowest to highest risk.
var classOrder = [...]Class{Class1, Class1M, Class2, Class2M, Class3R, Class3B, Class4}

func (c Class) Valid() bool {
	return c.Rank() >= 0
}

// Rank orders classes by risk. Unknown classes rank -1.
func (c Class) Rank() int {
	for i, k := range classOrder {
		if k == c {
			return i
		}
	}
	return -1
}

func (c Class) Description() string {
	switch c {
	case Class1:
		return "Safe under all conditions of normal use"
	case Class1M:
		return "Safe for the naked eye; may be hazardous when viewed with optical instruments"
	case Class2:
		return "Low power visible — eye protected by the blink reflex"
	case Class2M:
		return "Low power visible — blink reflex protects the naked eye, hazardous with optical instruments"
	case Class3R:
		return "Low risk — direct intrabeam viewing is potentially hazardous"
	case Class3B:
		return "Medium power — direct beam viewing is hazardous to the eye"
	case Class4:
		return "High power — hazardous to eye and skin, fire hazard"
	default:
		return "Unknown laser class"
	}
}

// Label is the class as printed on product labels, e.g. "CLASS 3R".
func (c Class) Label() string {
	return "CLASS " + string(c)
}
