package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	laser "Aperture/internal/calc/laser"
	"Aperture/internal/calc/premium/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sheet(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	return f
}

var header = []interface{}{"name", "wavelength_nm", "power_mw", "beam_diameter_mm", "divergence_mrad", "exposure_time_s", "distance_m", "freq_hz", "pulse_s"}

func TestReadItems(t *testing.T) {
	f := sheet(t, [][]interface{}{
		header,
		{"HeNe", 632.8, 5, 1, 1, 0.25, 2},
		{"YAG", 1064, 1000, 5, 0.5, 1, "", 10, 1e-8},
		{"short row", 532, 1},
		{"bad number", "green", 1, 1, 1, 1},
		{"comma decimal", "532", "4,5", "1", "1", "0,1"},
	})
	defer f.Close()

	items, skipped, err := ReadItems(f)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Len(t, skipped, 2)

	assert.Equal(t, "HeNe", items[0].Name)
	assert.Equal(t, 2, items[0].Row)
	assert.Equal(t, 2.0, items[0].Parameters.ObservationDistanceM)
	assert.False(t, items[0].Parameters.IsPulsed)

	assert.True(t, items[1].Parameters.IsPulsed)
	assert.Equal(t, 10.0, items[1].Parameters.PulseFrequencyHz)
	assert.Equal(t, 0.0, items[1].Parameters.ObservationDistanceM)

	assert.Equal(t, 4.5, items[2].Parameters.PowerMW)

	assert.Equal(t, 4, skipped[0].Row)
	assert.Equal(t, 5, skipped[1].Row)
	assert.Contains(t, skipped[1].Error, "column 2")
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "1500", want: 1500},
		{in: " 4.5 ", want: 4.5},
		{in: "4,5", want: 4.5},
		{in: "0,25", want: 0.25},
		{in: "1,5000", want: 1.5},
		{in: "1,500", wantErr: true},
		{in: "12,000", wantErr: true},
		{in: "1,500.5", wantErr: true},
		{in: "1.500,5", wantErr: true},
		{in: "1,2,3", wantErr: true},
		{in: "green", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := toFloat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRow_ThousandsSeparator(t *testing.T) {
	_, err := parseRow([]string{"fiber", "1064", "1,500", "2", "1", "10"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "column 3")
}

func TestReadItems_TooManyRows(t *testing.T) {
	rows := [][]interface{}{header}
	for i := 0; i <= batch.MaxItems; i++ {
		rows = append(rows, []interface{}{"HeNe", 632.8, 5, 1, 1, 0.25})
	}
	f := sheet(t, rows)
	defer f.Close()

	_, _, err := ReadItems(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many rows")
}

func TestReadItems_Empty(t *testing.T) {
	f := sheet(t, [][]interface{}{header})
	defer f.Close()
	_, _, err := ReadItems(f)
	require.Error(t, err)
}

func TestWriteResults(t *testing.T) {
	res, err := laser.Calculate(laser.Parameters{WavelengthNm: 632.8, PowerMW: 5, BeamDiameterMM: 1, DivergenceMrad: 1, ExposureTimeS: 0.25})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, []batch.ItemResult{{Name: "HeNe", Result: res}}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, []string{"HeNe", "Visible", "3R"}, rows[1][:3])
}

func upload(t *testing.T, f *excelize.File) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "lasers.xlsx")
	require.NoError(t, err)
	_, err = f.WriteTo(part)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler_Laser(t *testing.T) {
	f := sheet(t, [][]interface{}{
		header,
		{"HeNe", 632.8, 5, 1, 1, 0.25},
		{"invalid", 532, -1, 1, 1, 1},
		{"CO2", 10600, 40000, 6, 2, 10},
	})
	defer f.Close()

	rec := httptest.NewRecorder()
	(&Handler{}).Laser(rec, upload(t, f))
	require.Equal(t, http.StatusOK, rec.Code)

	var out ImportResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, laser.Class4, out.Results[1].Result.Class)
	require.Len(t, out.Skipped, 1)
	assert.Equal(t, 3, out.Skipped[0].Row)
}

func TestHandler_LaserXLSX(t *testing.T) {
	f := sheet(t, [][]interface{}{header, {"HeNe", 632.8, 5, 1, 1, 0.25}})
	defer f.Close()

	rec := httptest.NewRecorder()
	(&Handler{}).LaserXLSX(rec, upload(t, f))
	require.Equal(t, http.StatusOK, rec.Code)

	out, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer out.Close()
	rows, err := out.GetRows("Results")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestHandler_NoFile(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).Laser(rec, httptest.NewRequest(http.MethodPost, "/import", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
