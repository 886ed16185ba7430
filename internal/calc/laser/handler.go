package laser

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"
)

type Handler struct {
	Engine *Engine
}

func (h *Handler) engine() *Engine {
	if h.Engine == nil {
		return Default()
	}
	return h.Engine
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Parameters
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := h.engine().Calculate(input)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Float64("wavelength_nm", input.WavelengthNm).Msg("laser calculation rejected")
		if errors.Is(err, ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Calculation error", http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response failed")
	}
}

// Tables serves the reference tables the engine classifies against.
func (h *Handler) Tables(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.engine().Tables()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response failed")
	}
}
