package handlers

import (
	"log/slog"
	"net/http"

	"mediafeed/internal/config"
	"mediafeed/internal/media"
	"mediafeed/internal/store"
	"mediafeed/internal/utils"
)

type Handler struct {
	Store store.Store
	Auth  *AuthHandler
	Posts *PostHandler
}

func NewHandler(st store.Store, mediaClient *media.Client, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{
		Store: st,
		Auth:  NewAuthHandler(st, cfg, log),
		Posts: NewPostHandler(st, mediaClient, log),
	}
}

// Health is the liveness check.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
