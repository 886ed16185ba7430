package importer

import (
	"encoding/json"
	"net/http"

	laser "Aperture/internal/calc/laser"
	"Aperture/internal/calc/premium/batch"
	"github.com/rs/zerolog/hlog"
	"github.com/xuri/excelize/v2"
)

type Handler struct {
	Engine *laser.Engine
}

type ImportResult struct {
	Count   int                `json:"count"`
	Results []batch.ItemResult `json:"results"`
	Skipped []RowError         `json:"skipped,omitempty"`
}

const MaxUploadSize = 10 << 20 // 10MB

func (h *Handler) engine() *laser.Engine {
	if h.Engine == nil {
		return laser.Default()
	}
	return h.Engine
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) (*excelize.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return nil, false
	}
	return f, true
}

func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) (ImportResult, bool) {
	f, ok := h.open(w, r)
	if !ok {
		return ImportResult{}, false
	}
	defer f.Close()

	items, skipped, err := ReadItems(f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return ImportResult{}, false
	}

	out := ImportResult{Skipped: skipped}
	for _, item := range items {
		res, err := h.engine().Calculate(item.Parameters)
		if err != nil {
			out.Skipped = append(out.Skipped, RowError{Row: item.Row, Error: err.Error()})
			continue
		}
		out.Results = append(out.Results, batch.ItemResult{Name: item.Name, Result: res})
	}
	out.Count = len(out.Results)
	if len(out.Skipped) > 0 {
		hlog.FromRequest(r).Info().Int("skipped", len(out.Skipped)).Int("count", out.Count).Msg("import rows skipped")
	}
	return out, true
}

// Laser calculates every row of the uploaded sheet and answers with JSON.
func (h *Handler) Laser(w http.ResponseWriter, r *http.Request) {
	out, ok := h.calculate(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response failed")
	}
}

// LaserXLSX calculates the uploaded sheet and answers with a results workbook.
func (h *Handler) LaserXLSX(w http.ResponseWriter, r *http.Request) {
	out, ok := h.calculate(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"laser-results.xlsx\"")
	if err := WriteResults(w, out.Results); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("xlsx export failed")
		http.Error(w, "Export error", http.StatusInternalServerError)
	}
}
