// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Days
	mux.HandleFunc("GET /days/{day}/questions", h.dayQuestions)
	mux.HandleFunc("POST /days/{day}/reset", h.resetDay)

	// Progress
	mux.HandleFunc("GET /progress", h.getProgress)
	mux.HandleFunc("POST /progress/advance", h.advanceDay)
	mux.HandleFunc("POST /progress/reset", h.resetProgress)

	// Mistakes
	mux.HandleFunc("GET /mistakes", h.listMistakes)
	mux.HandleFunc("DELETE /mistakes", h.clearMistakes)

	// Practice
	mux.HandleFunc("POST /practice/view", h.practiceView)
	mux.HandleFunc("POST /practice/submit", h.practiceSubmit)
	mux.HandleFunc("POST /practice/next", h.practiceNext)
	mux.HandleFunc("POST /practice/restart", h.practiceRestart)
	mux.HandleFunc("POST /practice/reshuffle", h.practiceReshuffle)

	// Backup
	mux.HandleFunc("GET /export", h.exportAll)
	mux.HandleFunc("POST /import", h.importAll)
}
