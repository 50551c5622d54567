package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/openballot/ledger/internal/core/domain"
	"github.com/openballot/ledger/internal/core/ports"
)

type PollHandler struct {
	service ports.LedgerService
}

func NewPollHandler(service ports.LedgerService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationSeconds int64  `json:"duration_seconds"`
}

type createPollResponse struct {
	PollID uint64 `json:"poll_id"`
}

func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	creator, ok := AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing account context")
		return
	}

	input := ports.CreatePollInput{
		Creator:         creator,
		Title:           req.Title,
		Description:     req.Description,
		DurationSeconds: req.DurationSeconds,
	}

	pollID, err := h.service.CreatePoll(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTitle) || errors.Is(err, domain.ErrInvalidDuration) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, createPollResponse{PollID: pollID})
}

func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	poll, err := h.service.GetPoll(r.Context(), pollID)
	if err != nil {
		if errors.Is(err, domain.ErrPollDoesNotExist) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}

		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, poll)
}

func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.service.ListPolls(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, polls)
}

type pollCountResponse struct {
	Count uint64 `json:"count"`
}

func (h *PollHandler) GetPollCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.GetPollCount(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, pollCountResponse{Count: count})
}

func pollIDParam(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
}
