package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	laser "Aperture/internal/calc/laser"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heNe(t *testing.T) (laser.Parameters, laser.Result) {
	t.Helper()
	in := laser.Parameters{
		WavelengthNm:         632.8,
		PowerMW:              5,
		BeamDiameterMM:       1,
		DivergenceMrad:       1,
		ExposureTimeS:        0.25,
		ObservationDistanceM: 1,
	}
	res, err := laser.Calculate(in)
	require.NoError(t, err)
	return in, res
}

func TestExport_Sections(t *testing.T) {
	in, res := heNe(t)
	out := Export(in, res)

	require.True(t, strings.HasPrefix(out, Heading+"\n"))
	want := []string{
		"INPUT PARAMETERS",
		"MAXIMUM PERMISSIBLE EXPOSURE (MPE)",
		"NOMINAL HAZARD DISTANCE (NOHD)",
		"IRRADIANCE",
		"CLASSIFICATION",
		"CONTROL MEASURES",
		"WARNING LABELS",
	}
	last := -1
	for _, s := range want {
		i := strings.Index(out, "\n"+s+"\n")
		require.GreaterOrEqual(t, i, 0, s)
		assert.Greater(t, i, last, "%s out of order", s)
		last = i
	}

	assert.Contains(t, out, "Wavelength: 632.8 nm (Visible)")
	assert.Contains(t, out, "Ocular: 6.364e-04 J/cm²")
	assert.Contains(t, out, "Skin (NSHD): 0.00 m (no hazard zone beyond the aperture)")
	assert.Contains(t, out, "Class 3R: "+laser.Class3R.Description())
	assert.Contains(t, out, "  1. "+res.Controls[0])
	assert.Contains(t, out, "  CLASS 3R LASER PRODUCT")
	assert.Contains(t, out, "Mode: continuous wave")
	assert.NotContains(t, out, "PULSE TRAIN")
}

func TestExport_Deterministic(t *testing.T) {
	in, res := heNe(t)
	assert.Equal(t, Export(in, res), Export(in, res))
}

func TestExport_Pulsed(t *testing.T) {
	in := laser.Parameters{
		WavelengthNm:     1064,
		PowerMW:          1000,
		BeamDiameterMM:   5,
		DivergenceMrad:   0.5,
		ExposureTimeS:    1,
		IsPulsed:         true,
		PulseFrequencyHz: 10,
		PulseDurationS:   10e-9,
	}
	res, err := laser.Calculate(in)
	require.NoError(t, err)

	out := Export(in, res)
	assert.Contains(t, out, "PULSE TRAIN")
	assert.Contains(t, out, "Pulses in exposure: 10")
	assert.Contains(t, out, "Pulse frequency: 10 Hz")
	assert.NotContains(t, out, "Mode: continuous wave")
}

func TestWritePDF(t *testing.T) {
	in, res := heNe(t)
	var buf bytes.Buffer
	err := WritePDF(&buf, Meta{Project: "Lab 4", Author: "LSO", Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}, in, res)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestHandler_Generate(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/report/{format}", (&Handler{}).Generate)
	body := `{"project":"Lab 4","parameters":{"wavelength_nm":632.8,"power_mw":5,"beam_diameter_mm":1,"divergence_mrad":1,"exposure_time_s":0.25}}`

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report/txt", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), Heading))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report/pdf", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report/docx", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/report/txt", strings.NewReader(`{"parameters":{}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
