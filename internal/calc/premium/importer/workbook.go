package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	laser "Aperture/internal/calc/laser"
	"Aperture/internal/calc/premium/batch"
	"github.com/xuri/excelize/v2"
)

// Columns expected in the first sheet, after a header row:
// name, wavelength_nm, power_mw, beam_diameter_mm, divergence_mrad,
// exposure_time_s, observation_distance_m (optional),
// pulse_frequency_hz (optional), pulse_duration_s (optional).
const minColumns = 6

type Item struct {
	Row        int
	Name       string
	Parameters laser.Parameters
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ReadItems parses the first sheet. Rows that fail to parse are reported in
// the second return value; more than batch.MaxItems data rows is an error.
func ReadItems(f *excelize.File) ([]Item, []RowError, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("empty sheet")
	}

	var items []Item
	var skipped []RowError
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		if len(items)+len(skipped) >= batch.MaxItems {
			return nil, nil, fmt.Errorf("too many rows: more than %d", batch.MaxItems)
		}
		p, err := parseRow(row)
		if err != nil {
			skipped = append(skipped, RowError{Row: i + 1, Error: err.Error()})
			continue
		}
		items = append(items, Item{Row: i + 1, Name: strings.TrimSpace(row[0]), Parameters: p})
	}
	return items, skipped, nil
}

func parseRow(row []string) (laser.Parameters, error) {
	if len(row) < minColumns {
		return laser.Parameters{}, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(row))
	}
	var p laser.Parameters
	required := []struct {
		col int
		dst *float64
	}{
		{1, &p.WavelengthNm},
		{2, &p.PowerMW},
		{3, &p.BeamDiameterMM},
		{4, &p.DivergenceMrad},
		{5, &p.ExposureTimeS},
	}
	for _, c := range required {
		v, err := toFloat(row[c.col])
		if err != nil {
			return laser.Parameters{}, fmt.Errorf("column %d: %w", c.col+1, err)
		}
		*c.dst = v
	}
	optional := []struct {
		col int
		dst *float64
	}{
		{6, &p.ObservationDistanceM},
		{7, &p.PulseFrequencyHz},
		{8, &p.PulseDurationS},
	}
	for _, c := range optional {
		if len(row) <= c.col || strings.TrimSpace(row[c.col]) == "" {
			continue
		}
		v, err := toFloat(row[c.col])
		if err != nil {
			return laser.Parameters{}, fmt.Errorf("column %d: %w", c.col+1, err)
		}
		*c.dst = v
	}
	p.IsPulsed = p.PulseFrequencyHz > 0 || p.PulseDurationS > 0
	return p, nil
}

// toFloat accepts a decimal comma ("4,5") and rejects anything that could be
// a thousands separator ("1,500", "1,500.5", "1,2,3").
func toFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ','); i >= 0 {
		frac := s[i+1:]
		switch {
		case strings.Contains(frac, ",") || strings.Contains(s, "."):
			return 0, fmt.Errorf("ambiguous number %q", s)
		case len(frac) == 3 && isDigits(frac):
			return 0, fmt.Errorf("ambiguous number %q: comma reads as a thousands separator", s)
		}
		s = s[:i] + "." + frac
	}
	return strconv.ParseFloat(s, 64)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

var resultHeader = []interface{}{
	"Name", "Region", "Class", "Ocular MPE", "Ocular MPE unit", "Skin MPE", "Skin MPE unit",
	"Ocular NOHD (m)", "Skin NOHD (m)", "Irradiance (W/cm²)", "Controls",
}

// WriteResults writes one row per calculated item.
func WriteResults(w io.Writer, results []batch.ItemResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &resultHeader); err != nil {
		return err
	}
	for i, item := range results {
		res := item.Result
		row := []interface{}{
			item.Name, string(res.Region), string(res.Class),
			res.OcularMPE.Value, string(res.OcularMPE.Unit),
			res.SkinMPE.Value, string(res.SkinMPE.Unit),
			res.OcularNOHD.Meters, res.SkinNOHD.Meters,
			res.IrradianceWCm2, strings.Join(res.Controls, "; "),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}
