package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"codepair/internal/api"
)

func New(h *api.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", h.Health)

	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Get("/auth/me", h.Me)

	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", h.CreateRoom)
		r.Get("/", h.ListRooms)
		r.Route("/{roomID}", func(r chi.Router) {
			r.Get("/", h.GetRoom)
			r.Patch("/", h.UpdateRoom)
			r.Delete("/", h.DeleteRoom)
			r.Post("/join", h.JoinRoom)
			r.Post("/leave", h.LeaveRoom)
			r.Get("/users", h.ListParticipants)
		})
	})

	r.Post("/autocomplete", h.Autocomplete)
	r.Post("/run", h.RunCode)

	r.Get("/ws/{roomID}", h.CollabWS)

	return r
}
