package presets

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
)

type Handler struct{}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(All()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response failed")
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := Lookup(mux.Vars(r)["name"])
	if err != nil {
		http.Error(w, "Preset not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(p); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response failed")
	}
}
