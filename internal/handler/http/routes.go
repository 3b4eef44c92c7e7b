package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// throttleLimit caps the number of in-flight requests; excess requests get
// 503 after a short backlog wait.
const throttleLimit = 100

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Throttle(throttleLimit))

	router.Route("/api/v1", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/auth/signup", h.signup)
			r.Post("/auth/login", h.login)
			r.Post("/auth/refresh_token", h.refreshToken)
			r.Get("/auth/verify/{token}", h.verifyEmail)
		})

		// routes guarded by the bearer middleware
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/auth/logout", h.logout)

			r.Get("/users/me", h.getProfile)
			r.Patch("/users/me", h.updateProfile)
			r.Delete("/users/me", h.deleteAccount)

			r.Post("/notes", h.createNote)
			r.Get("/notes", h.listNotes)
			r.Patch("/notes/{id}", h.updateNote)
			r.Delete("/notes/{id}", h.deleteNote)

			r.Get("/labels", h.listLabels)
		})
	})

	return router
}
