package api

import (
	"errors"
	"net/http"

	practicesession "github.com/daycards/backend/internal/domain/practice_session"
	"github.com/daycards/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type PracticeRequest struct {
	Mode       string           `json:"mode,omitempty" example:"flashcard"`
	Days       []int            `json:"days,omitempty" example:"1"`
	Selection  []string         `json:"selection,omitempty" example:"A,C"`
	Selections map[int][]string `json:"selections,omitempty"`
}

func (r *PracticeRequest) Validate() error {
	if _, err := practicesession.ParseMode(r.Mode); err != nil {
		return err
	}
	for _, d := range r.Days {
		if d < 1 {
			return errors.New("days must be positive")
		}
	}
	return nil
}

func (r *PracticeRequest) session() service.Request {
	return service.Request{Mode: r.Mode, Days: r.Days}
}

type WarningResponse struct {
	Warning string       `json:"warning" example:"empty_selection"`
	Message string       `json:"message" example:"Please select at least one answer before submitting."`
	View    service.View `json:"view"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// practiceView returns the current screen of a session.
// @Summary      View a practice session
// @Description  Returns the current question of a session, starting a new round when none is saved. Days default to the current day.
// @Tags         Practice
// @Accept       json
// @Produce      json
// @Param        body  body      PracticeRequest  false  "Session selection"
// @Success      200   {object}  service.Result
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /practice/view [post]
func (h *Handler) practiceView(w http.ResponseWriter, r *http.Request) {
	var req PracticeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.practice.View(r.Context(), req.session())
	if h.handleServiceError(w, err, "load session") {
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// practiceSubmit grades the current question, or the whole batch in quiz mode.
// @Summary      Submit an answer
// @Description  Grades `selection` against the current question. In quiz mode send `selections` keyed by question id instead.
// @Tags         Practice
// @Accept       json
// @Produce      json
// @Param        body  body      PracticeRequest  true  "Session and selected letters"
// @Success      200   {object}  service.Result
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  WarningResponse
// @Failure      500   {object}  map[string]string
// @Router       /practice/submit [post]
func (h *Handler) practiceSubmit(w http.ResponseWriter, r *http.Request) {
	var req PracticeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var ev practicesession.Event = practicesession.Submit{Selection: req.Selection}
	if req.Selections != nil {
		ev = practicesession.SubmitAll{Selections: req.Selections}
	}
	h.apply(w, r, req, ev)
}

// practiceNext moves past the feedback of the current question.
// @Summary      Next question
// @Tags         Practice
// @Accept       json
// @Produce      json
// @Param        body  body      PracticeRequest  false  "Session selection"
// @Success      200   {object}  service.Result
// @Failure      409   {object}  WarningResponse
// @Router       /practice/next [post]
func (h *Handler) practiceNext(w http.ResponseWriter, r *http.Request) {
	var req PracticeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.apply(w, r, req, practicesession.Next{})
}

// practiceRestart starts the round again and forgets its recorded answers.
// @Summary      Restart a round
// @Description  Starts a new shuffled round. Single-day sessions also forget the recorded answers of the day; mistakes are kept.
// @Tags         Practice
// @Accept       json
// @Produce      json
// @Param        body  body      PracticeRequest  false  "Session selection"
// @Success      200   {object}  service.Result
// @Router       /practice/restart [post]
func (h *Handler) practiceRestart(w http.ResponseWriter, r *http.Request) {
	var req PracticeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.apply(w, r, req, practicesession.Restart{})
}

// practiceReshuffle draws a new order without touching progress.
// @Summary      Reshuffle a round
// @Tags         Practice
// @Accept       json
// @Produce      json
// @Param        body  body      PracticeRequest  false  "Session selection"
// @Success      200   {object}  service.Result
// @Router       /practice/reshuffle [post]
func (h *Handler) practiceReshuffle(w http.ResponseWriter, r *http.Request) {
	var req PracticeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.apply(w, r, req, practicesession.Reshuffle{})
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request, req PracticeRequest, ev practicesession.Event) {
	res, err := h.practice.Apply(r.Context(), req.session(), ev)
	if h.handleServiceError(w, err, "update session") {
		return
	}
	if res.Warning != nil {
		respondJSON(w, http.StatusConflict, WarningResponse{
			Warning: string(res.Warning.Code),
			Message: res.Warning.Message,
			View:    res.View,
		})
		return
	}
	respondJSON(w, http.StatusOK, res)
}
