package handlers

import (
	"fmt"
	"net/http"

	"github.com/Dosada05/task-battle/models"
	"github.com/Dosada05/task-battle/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: ts,
	}
}

type createTournamentInput struct {
	Tasks []models.Task `json:"tasks"`
}

type advanceMatchInput struct {
	WinnerID string `json:"winner_id"`
}

// CreateHandler godoc
// @Summary Create a tournament from a task list
// @Tags tournaments
// @Accept json
// @Produce json
// @Param input body createTournamentInput true "Tasks in seeding order"
// @Success 201 {object} map[string]interface{} "Tournament created"
// @Failure 400 {object} map[string]string "Invalid body or task list"
// @Router /tournaments [post]
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input createTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	record, err := h.tournamentService.Create(r.Context(), input.Tasks)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ImportHandler godoc
// @Summary Create a tournament from a CSV task list
// @Tags tournaments
// @Accept text/csv
// @Produce json
// @Success 201 {object} map[string]interface{} "Tournament created"
// @Failure 400 {object} map[string]string "Invalid task list"
// @Failure 422 {object} map[string]string "CSV is missing required columns"
// @Router /tournaments/import [post]
func (h *TournamentHandler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	record, err := h.tournamentService.Import(r.Context(), r.Body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler godoc
// @Summary Get a tournament
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Tournament not found"
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getParamFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	record, err := h.tournamentService.Get(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler godoc
// @Summary Discard a tournament
// @Tags tournaments
// @Param tournamentID path string true "Tournament ID"
// @Success 204
// @Failure 404 {object} map[string]string "Tournament not found"
// @Router /tournaments/{tournamentID} [delete]
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getParamFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartMatchHandler godoc
// @Summary Mark a match as in progress
// @Tags matches
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param matchID path string true "Match ID, e.g. round-1-match-0"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Match is waiting for an opponent"
// @Failure 404 {object} map[string]string "Tournament or match not found"
// @Failure 409 {object} map[string]string "Match already completed"
// @Router /tournaments/{tournamentID}/matches/{matchID}/start [post]
func (h *TournamentHandler) StartMatchHandler(w http.ResponseWriter, r *http.Request) {
	id, matchID, ok := h.matchParams(w, r)
	if !ok {
		return
	}

	record, err := h.tournamentService.StartMatch(r.Context(), id, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdvanceMatchHandler godoc
// @Summary Record the winner of a match
// @Tags matches
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param matchID path string true "Match ID, e.g. round-1-match-0"
// @Param input body advanceMatchInput true "Winning task"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Winner is not in the match, or the match is not ready"
// @Failure 404 {object} map[string]string "Tournament or match not found"
// @Failure 409 {object} map[string]string "Match already completed"
// @Router /tournaments/{tournamentID}/matches/{matchID}/advance [post]
func (h *TournamentHandler) AdvanceMatchHandler(w http.ResponseWriter, r *http.Request) {
	id, matchID, ok := h.matchParams(w, r)
	if !ok {
		return
	}

	var input advanceMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.WinnerID == "" {
		badRequestResponse(w, r, fmt.Errorf("%w: winner_id is required", services.ErrValidationFailed))
		return
	}

	record, err := h.tournamentService.Advance(r.Context(), id, matchID, input.WinnerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": record}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PrioritiesHandler godoc
// @Summary Tasks with their computed winner flag and priority
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Tournament not found"
// @Router /tournaments/{tournamentID}/priorities [get]
func (h *TournamentHandler) PrioritiesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getParamFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tasks, err := h.tournamentService.Priorities(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tasks": tasks}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportHandler godoc
// @Summary Download the tournament as CSV
// @Tags export
// @Produce text/csv
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {string} string "CSV export"
// @Failure 404 {object} map[string]string "Tournament not found"
// @Router /tournaments/{tournamentID}/export [get]
func (h *TournamentHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getParamFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	data, err := h.tournamentService.ExportCSV(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "tournament-"+id+".csv"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(data)); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadExportHandler godoc
// @Summary Upload the CSV export to object storage
// @Tags export
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 201 {object} map[string]interface{} "Upload result with public location"
// @Failure 404 {object} map[string]string "Tournament not found"
// @Failure 502 {object} map[string]string "Storage rejected the upload"
// @Failure 503 {object} map[string]string "Storage is not configured"
// @Router /tournaments/{tournamentID}/export [post]
func (h *TournamentHandler) UploadExportHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getParamFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.tournamentService.UploadExport(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"export": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) matchParams(w http.ResponseWriter, r *http.Request) (id, matchID string, ok bool) {
	id, err := getParamFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	matchID, err = getParamFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	return id, matchID, true
}
