package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openballot/ledger/internal/adapters/notifier"
)

// EventsHandler streams ledger notifications over SSE so front-ends and
// indexers can subscribe instead of polling.
type EventsHandler struct {
	broadcaster *notifier.Broadcaster
}

func NewEventsHandler(broadcaster *notifier.Broadcaster) *EventsHandler {
	return &EventsHandler{
		broadcaster: broadcaster,
	}
}

func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel := h.broadcaster.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				continue
			}

			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Kind, data)
			flusher.Flush()
		}
	}
}
