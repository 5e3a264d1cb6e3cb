package api

import (
	"net/http"

	"github.com/daycards/backend/internal/service"
)

type ClearMistakesResponse struct {
	Cleared int `json:"cleared" example:"4"`
}

// listMistakes lists mistake counters, most frequent first.
// @Summary      List mistakes
// @Tags         Mistakes
// @Produce      json
// @Param        day  query     int  false  "Only this day"
// @Success      200  {array}   service.MistakeEntry
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /mistakes [get]
func (h *Handler) listMistakes(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r.URL.Query().Get("day"), false)
	if !ok {
		return
	}

	entries, err := h.practice.Mistakes(r.Context(), day)
	if h.handleServiceError(w, err, "load mistakes") {
		return
	}
	if entries == nil {
		entries = []service.MistakeEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// clearMistakes removes mistake counters.
// @Summary      Clear mistakes
// @Tags         Mistakes
// @Produce      json
// @Param        day  query     int  false  "Only this day"
// @Success      200  {object}  ClearMistakesResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /mistakes [delete]
func (h *Handler) clearMistakes(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r.URL.Query().Get("day"), false)
	if !ok {
		return
	}

	n, err := h.practice.ClearMistakes(r.Context(), day)
	if h.handleServiceError(w, err, "clear mistakes") {
		return
	}
	respondJSON(w, http.StatusOK, ClearMistakesResponse{Cleared: n})
}
