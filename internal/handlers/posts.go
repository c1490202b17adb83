package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mediafeed/internal/media"
	"mediafeed/internal/models"
	"mediafeed/internal/store"
	"mediafeed/internal/utils"
)

type PostHandler struct {
	Store store.Store
	Media *media.Client
	log   *slog.Logger
}

func NewPostHandler(st store.Store, mediaClient *media.Client, log *slog.Logger) *PostHandler {
	return &PostHandler{Store: st, Media: mediaClient, log: log}
}

type feedResp struct {
	Posts []models.Post `json:"posts"`
}

type deleteResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ---------------------- UPLOAD ----------------------

// Upload stages the incoming file to a temp path, forwards it to the
// media host and persists a post only once the host reports success.
// The temp file is removed on every exit path.
func (h *PostHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	caption := r.FormValue("caption")

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		h.log.Error("stage upload", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, err = io.Copy(tmp, file)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		h.log.Error("stage upload", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	staged, err := os.Open(tmpPath)
	if err != nil {
		h.log.Error("reopen staged file", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer staged.Close()

	res, err := h.Media.Upload(r.Context(), staged, header.Filename)
	if err != nil {
		h.log.Error("media upload", "file", header.Filename, "error", err)
		var ue *media.UploadError
		if errors.As(err, &ue) {
			utils.JSONError(w, http.StatusBadGateway, "media upload failed")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	post := &models.Post{
		ID:        uuid.New(),
		Caption:   caption,
		URL:       res.URL,
		FileType:  models.FileTypeFor(header.Header.Get("Content-Type")),
		FileName:  res.Name,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.Store.CreatePost(r.Context(), post); err != nil {
		h.log.Error("persist post", "id", post.ID, "error", err)
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, post)
}

// ---------------------- FEED ----------------------

func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Store.ListPosts(r.Context())
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	utils.JSON(w, http.StatusOK, feedResp{Posts: posts})
}

// ---------------------- LIST ----------------------

func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Store.ListPosts(r.Context())
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	utils.JSON(w, http.StatusOK, posts)
}

// ---------------------- GET ONE ----------------------

func (h *PostHandler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.Store.PostByID(r.Context(), id)
	if errors.Is(err, store.ErrPostNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, post)
}

// ---------------------- DELETE ----------------------

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	err = h.Store.DeletePost(r.Context(), id)
	if errors.Is(err, store.ErrPostNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, deleteResp{Success: true, Message: "post deleted"})
}
