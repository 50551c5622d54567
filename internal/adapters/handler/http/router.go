package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(pollHandler *PollHandler, voteHandler *VoteHandler, adminHandler *AdminHandler, eventsHandler *EventsHandler, auth *AccountAuth) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.Get("/count", pollHandler.GetPollCount)
			r.Get("/{id}", pollHandler.GetPoll)
			r.Get("/{id}/voters", voteHandler.GetVoters)
			r.Get("/{id}/voters/{account}", voteHandler.GetVoterChoice)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAccount)
				r.Post("/", pollHandler.CreatePoll)
				r.Post("/{id}/votes", voteHandler.Vote)
				r.Post("/{id}/pause", adminHandler.PausePoll)
				r.Post("/{id}/unpause", adminHandler.UnpausePoll)
			})
		})

		r.Get("/events", eventsHandler.Stream)
	})

	return r
}
