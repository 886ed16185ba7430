package batch

import (
	"encoding/json"
	"net/http"

	laser "Aperture/internal/calc/laser"
	"github.com/rs/zerolog/hlog"
)

type Handler struct {
	Engine *laser.Engine
}

func (h *Handler) Laser(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	engine := h.Engine
	if engine == nil {
		engine = laser.Default()
	}
	res, err := Calculate(engine, input)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Int("items", len(input.Items)).Msg("batch rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response failed")
	}
}
