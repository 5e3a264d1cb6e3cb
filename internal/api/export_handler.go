package api

import (
	"net/http"

	"github.com/daycards/backend/internal/service"
)

// exportAll downloads every state document.
// @Summary      Export state
// @Description  Downloads progress, mistakes, round states and round counters as one JSON envelope.
// @Tags         Backup
// @Produce      json
// @Success      200  {object}  service.Backup
// @Failure      500  {object}  map[string]string
// @Router       /export [get]
func (h *Handler) exportAll(w http.ResponseWriter, r *http.Request) {
	backup, err := h.backup.Export(r.Context())
	if h.handleServiceError(w, err, "export") {
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=daycards-backup.json")
	respondJSON(w, http.StatusOK, backup)
}

// importAll restores documents from an export.
// @Summary      Import state
// @Description  Replaces every document present in the envelope. Nothing is written when a document fails validation.
// @Tags         Backup
// @Accept       json
// @Produce      json
// @Param        body  body      service.Backup  true  "Export envelope"
// @Success      200   {object}  service.ImportResult
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /import [post]
func (h *Handler) importAll(w http.ResponseWriter, r *http.Request) {
	var backup service.Backup
	if !decodeJSON(w, r, &backup) {
		return
	}
	if len(backup.Documents) == 0 {
		respondError(w, http.StatusBadRequest, "documents are required")
		return
	}

	res, err := h.backup.Import(r.Context(), &backup)
	if h.handleServiceError(w, err, "import") {
		return
	}
	respondJSON(w, http.StatusOK, res)
}
