package laser

import "errors"

var (
	// ErrInvalidInput wraps every parameter validation failure.
	ErrInvalidInput = errors.New("invalid laser parameters")

	// ErrDegenerateBeam means the beam has zero diameter at the evaluated range.
	ErrDegenerateBeam = errors.New("degenerate beam geometry: zero diameter")

	ErrInvalidTables = errors.New("invalid reference tables")
)
