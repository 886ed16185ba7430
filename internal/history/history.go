package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"Aperture/internal/auth"
	laser "Aperture/internal/calc/laser"
	"Aperture/internal/repo"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
)

const maxNameLen = 120

type Handler struct {
	Repo   repo.Repository
	Engine *laser.Engine
}

type SaveRequest struct {
	Name       string           `json:"name"`
	Parameters laser.Parameters `json:"parameters"`
}

func (h *Handler) engine() *laser.Engine {
	if h.Engine == nil {
		return laser.Default()
	}
	return h.Engine
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("encode response failed")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// Save recalculates the submitted parameters and stores the result. Any
// result sent by the client is ignored.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > maxNameLen {
		http.Error(w, "Name required (up to 120 characters)", http.StatusBadRequest)
		return
	}

	res, err := h.engine().Calculate(req.Parameters)
	if err != nil {
		if errors.Is(err, laser.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		hlog.FromRequest(r).Warn().Err(err).Msg("laser calculation failed")
		http.Error(w, "Calculation error", http.StatusUnprocessableEntity)
		return
	}

	c := &repo.Calculation{UserID: userID, Name: req.Name, Parameters: req.Parameters, Result: res}
	if err := h.Repo.SaveCalculation(r.Context(), c); err != nil {
		hlog.FromRequest(r).Error().Err(err).Int("user_id", userID).Msg("save calculation failed")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusCreated, c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	list, err := h.Repo.ListCalculations(r.Context(), userID, limit)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Int("user_id", userID).Msg("list calculations failed")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := h.Repo.GetCalculation(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.Error(w, "Calculation not found", http.StatusNotFound)
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("get calculation failed")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, r, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Repo.DeleteCalculation(r.Context(), userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.Error(w, "Calculation not found", http.StatusNotFound)
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("delete calculation failed")
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
