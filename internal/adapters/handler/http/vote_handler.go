package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/openballot/ledger/internal/core/domain"
	"github.com/openballot/ledger/internal/core/ports"
)

type VoteHandler struct {
	service ports.LedgerService
}

func NewVoteHandler(service ports.LedgerService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	Yes bool `json:"yes"`
}

func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	voter, ok := AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing account context")
		return
	}

	if err := h.service.Vote(r.Context(), pollID, voter, req.Yes); err != nil {
		switch {
		case errors.Is(err, domain.ErrPollDoesNotExist):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrPollIsPaused),
			errors.Is(err, domain.ErrPollExpired),
			errors.Is(err, domain.ErrAlreadyVoted):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *VoteHandler) GetVoters(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	voters, err := h.service.GetVoters(r.Context(), pollID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, voters)
}

func (h *VoteHandler) GetVoterChoice(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	account := chi.URLParam(r, "account")
	if account == "" {
		writeError(w, http.StatusBadRequest, "missing account")
		return
	}

	record, err := h.service.GetVoterChoice(r.Context(), pollID, domain.Account(account))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}
