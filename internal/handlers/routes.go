package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mediafeed/internal/middleware"
)

// Routes mounts the full HTTP surface. Reads are public; upload and
// delete require a bearer token.
func Routes(h *Handler, accessSecret string) http.Handler {
	r := chi.NewRouter()

	// Public
	r.Get("/", h.Health)
	r.Get("/feed", h.Posts.Feed)
	r.Get("/posts", h.Posts.GetPosts)
	r.Get("/posts/{id}", h.Posts.GetPostByID)

	r.Post("/auth/register", h.Auth.Register)
	r.Post("/auth/jwt/login", h.Auth.Login)
	r.Post("/auth/jwt/refresh", h.Auth.Refresh)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(accessSecret))

		r.Post("/upload", h.Posts.Upload)
		r.Delete("/posts/{id}", h.Posts.DeletePost)

		r.Post("/auth/jwt/logout", h.Auth.Logout)
		r.Get("/users/me", h.Auth.Me)
	})

	return r
}
