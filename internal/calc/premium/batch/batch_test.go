package batch

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	laser "Aperture/internal/calc/laser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func params(nm, mw float64) laser.Parameters {
	return laser.Parameters{WavelengthNm: nm, PowerMW: mw, BeamDiameterMM: 2, DivergenceMrad: 1, ExposureTimeS: 0.25}
}

func TestCalculate(t *testing.T) {
	res, err := Calculate(laser.Default(), Input{Items: []Item{
		{Name: "pointer", Parameters: params(650, 0.3)},
		{Name: "cutter", Parameters: params(10600, 40000)},
		{Name: "hene", Parameters: params(632.8, 5)},
	}})
	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.Equal(t, "pointer", res.Results[0].Name)
	assert.Equal(t, laser.Class1, res.Results[0].Result.Class)
	assert.Equal(t, laser.Class4, res.Highest)
}

func TestCalculate_Errors(t *testing.T) {
	_, err := Calculate(laser.Default(), Input{})
	require.Error(t, err)

	_, err = Calculate(laser.Default(), Input{Items: []Item{
		{Name: "ok", Parameters: params(532, 1)},
		{Name: "broken", Parameters: params(0, 1)},
	}})
	require.ErrorIs(t, err, laser.ErrInvalidInput)
	assert.Contains(t, err.Error(), "item 2 (broken)")

	_, err = Calculate(laser.Default(), Input{Items: make([]Item, MaxItems+1)})
	assert.ErrorContains(t, err, "too many items")
}

func TestHandler(t *testing.T) {
	body := `{"items":[{"name":"a","parameters":{"wavelength_nm":532,"power_mw":3,"beam_diameter_mm":1,"divergence_mrad":1,"exposure_time_s":0.1}}]}`
	rec := httptest.NewRecorder()
	(&Handler{}).Laser(rec, httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"highest_class":"2M"`)

	rec = httptest.NewRecorder()
	(&Handler{}).Laser(rec, httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
