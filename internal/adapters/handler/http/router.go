package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openvote/ballot/internal/core/ports"
)

func NewHandler(
	authHandler *AuthHandler,
	voteHandler *VoteHandler,
	resultHandler *ResultHandler,
	pageHandler *PageHandler,
	store ports.SessionStore,
	adminKey string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/auth/google", authHandler.Login)
	r.Get("/auth/google/callback", authHandler.Callback)
	r.Get("/auth/logout", authHandler.Logout)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(RequireSession(store))
			r.Get("/me", voteHandler.Me)
			r.Post("/vote", voteHandler.SubmitVote)
		})

		r.With(RequireAdminKey(adminKey)).Get("/results", resultHandler.Results)
	})

	r.Get("/", pageHandler.Home)
	r.With(RequireSessionPage(store)).Get("/vote", pageHandler.VotePage)
	r.Get("/admin", pageHandler.AdminPage)

	return r
}
