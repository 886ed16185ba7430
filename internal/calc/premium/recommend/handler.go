package recommend

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/hlog"
)

type Handler struct{}

func (h *Handler) Eyewear(w http.ResponseWriter, r *http.Request) {
	var input EyewearInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Eyewear(input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response failed")
	}
}
