package report

import (
	"encoding/json"
	"errors"
	"net/http"

	laser "Aperture/internal/calc/laser"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
)

type Input struct {
	Meta
	Parameters laser.Parameters `json:"parameters"`
}

type Handler struct {
	Engine *laser.Engine
}

// Generate recalculates the posted parameters and returns the report as
// text or PDF depending on the {format} route variable.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	engine := h.Engine
	if engine == nil {
		engine = laser.Default()
	}
	res, err := engine.Calculate(input.Parameters)
	if err != nil {
		if errors.Is(err, laser.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Calculation error", http.StatusUnprocessableEntity)
		return
	}

	switch mux.Vars(r)["format"] {
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=\"laser-report.pdf\"")
		if err := WritePDF(w, input.Meta, input.Parameters, res); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("pdf report failed")
			http.Error(w, "Report generation error", http.StatusInternalServerError)
			return
		}
	case "", "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=\"laser-report.txt\"")
		w.Write([]byte(Export(input.Parameters, res)))
	default:
		http.Error(w, "Unknown report format", http.StatusBadRequest)
	}
}
