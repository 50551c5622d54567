package http

import (
	"errors"
	"net/http"

	"github.com/openballot/ledger/internal/core/domain"
	"github.com/openballot/ledger/internal/core/ports"
)

type AdminHandler struct {
	service ports.LedgerService
}

func NewAdminHandler(service ports.LedgerService) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

func (h *AdminHandler) PausePoll(w http.ResponseWriter, r *http.Request) {
	h.setPaused(w, r, true)
}

func (h *AdminHandler) UnpausePoll(w http.ResponseWriter, r *http.Request) {
	h.setPaused(w, r, false)
}

func (h *AdminHandler) setPaused(w http.ResponseWriter, r *http.Request, paused bool) {
	pollID, err := pollIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid poll id")
		return
	}

	caller, ok := AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing account context")
		return
	}

	var serviceErr error
	if paused {
		serviceErr = h.service.PausePoll(r.Context(), pollID, caller)
	} else {
		serviceErr = h.service.UnpausePoll(r.Context(), pollID, caller)
	}

	if serviceErr != nil {
		switch {
		case errors.Is(serviceErr, domain.ErrNotOwner):
			writeError(w, http.StatusForbidden, serviceErr.Error())
		case errors.Is(serviceErr, domain.ErrPollDoesNotExist):
			writeError(w, http.StatusNotFound, serviceErr.Error())
		default:
			writeError(w, http.StatusInternalServerError, serviceErr.Error())
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
