package autodesign

import (
	"encoding/json"
	"net/http"

	laser "Aperture/internal/calc/laser"
	"github.com/rs/zerolog/hlog"
)

type Handler struct {
	Engine *laser.Engine
}

func (h *Handler) Power(w http.ResponseWriter, r *http.Request) {
	var input PowerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	engine := h.Engine
	if engine == nil {
		engine = laser.Default()
	}
	res, err := MaxSafePower(engine, input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response failed")
	}
}
