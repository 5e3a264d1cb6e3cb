package api

import (
	"net/http"

	"github.com/daycards/backend/internal/domain/question"
	"github.com/daycards/backend/internal/service"
)

type AdvanceResponse struct {
	Progress *service.ProgressView `json:"progress"`
	Warning  string                `json:"warning,omitempty" example:"day_incomplete"`
	Message  string                `json:"message,omitempty"`
}

// getProgress returns statistics of the current day.
// @Summary      Get progress
// @Tags         Progress
// @Produce      json
// @Success      200  {object}  service.ProgressView
// @Failure      500  {object}  map[string]string
// @Router       /progress [get]
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	v, err := h.practice.Progress(r.Context())
	if h.handleServiceError(w, err, "load progress") {
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// advanceDay moves to the next day.
// @Summary      Advance to the next day
// @Description  Refuses with 409 while today's batch has unanswered questions, unless force=true. Stops at the last day.
// @Tags         Progress
// @Produce      json
// @Param        force  query     bool  false  "Advance even if today is incomplete"
// @Success      200    {object}  AdvanceResponse
// @Failure      409    {object}  AdvanceResponse
// @Failure      500    {object}  map[string]string
// @Router       /progress/advance [post]
func (h *Handler) advanceDay(w http.ResponseWriter, r *http.Request) {
	force, ok := boolQuery(w, r, "force")
	if !ok {
		return
	}

	v, warning, err := h.practice.AdvanceDay(r.Context(), force)
	if h.handleServiceError(w, err, "advance day") {
		return
	}
	if warning != nil {
		respondJSON(w, http.StatusConflict, AdvanceResponse{
			Progress: v,
			Warning:  string(warning.Code),
			Message:  warning.Message,
		})
		return
	}
	respondJSON(w, http.StatusOK, AdvanceResponse{Progress: v})
}

// resetProgress returns to day 1 with nothing answered.
// @Summary      Reset progress
// @Tags         Progress
// @Produce      json
// @Success      200  {object}  service.ProgressView
// @Failure      500  {object}  map[string]string
// @Router       /progress/reset [post]
func (h *Handler) resetProgress(w http.ResponseWriter, r *http.Request) {
	v, err := h.practice.ResetProgress(r.Context())
	if h.handleServiceError(w, err, "reset progress") {
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// dayQuestions lists a day batch with answers, for review.
// @Summary      List a day's questions
// @Tags         Days
// @Produce      json
// @Param        day  path      int  true  "Day number"
// @Success      200  {array}   question.Question
// @Failure      400  {object}  map[string]string
// @Router       /days/{day}/questions [get]
func (h *Handler) dayQuestions(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r.PathValue("day"), true)
	if !ok {
		return
	}

	qs, err := h.practice.DayQuestions(day)
	if h.handleServiceError(w, err, "load questions") {
		return
	}
	if qs == nil {
		qs = []question.Question{}
	}
	respondJSON(w, http.StatusOK, qs)
}

// resetDay forgets the recorded answers and round states of one day.
// @Summary      Reset a day
// @Tags         Days
// @Produce      json
// @Param        day       path      int   true   "Day number"
// @Param        mistakes  query     bool  false  "Also clear the day's mistakes"
// @Success      200       {object}  service.ResetResult
// @Failure      400       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /days/{day}/reset [post]
func (h *Handler) resetDay(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r.PathValue("day"), true)
	if !ok {
		return
	}
	clearMistakes, ok := boolQuery(w, r, "mistakes")
	if !ok {
		return
	}

	res, err := h.practice.ResetDay(r.Context(), day, clearMistakes)
	if h.handleServiceError(w, err, "reset day") {
		return
	}
	respondJSON(w, http.StatusOK, res)
}
