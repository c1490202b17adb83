package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mediafeed/internal/config"
	"mediafeed/internal/models"
	"mediafeed/internal/store"
	"mediafeed/internal/utils"
)

type AuthHandler struct {
	Store store.Store
	cfg   *config.Config
	log   *slog.Logger
}

func NewAuthHandler(st store.Store, cfg *config.Config, log *slog.Logger) *AuthHandler {
	return &AuthHandler{Store: st, cfg: cfg, log: log}
}

// ----------- Request/Response DTOs -------------

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// -------------- REGISTER ----------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "email and password required")
		return
	}

	if len(req.Password) < 6 {
		utils.JSONError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user := &models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}

	err = h.Store.CreateUser(r.Context(), user)
	if errors.Is(err, store.ErrEmailTaken) {
		utils.JSONError(w, http.StatusBadRequest, "email already exists")
		return
	}
	if err != nil {
		h.log.Error("create user", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]string{
		"message": "user created",
	})
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	u, err := h.Store.UserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.issueTokens(w, r, u.ID, u.Email)
}

// issueTokens mints the access/refresh pair and stores the refresh token.
func (h *AuthHandler) issueTokens(w http.ResponseWriter, r *http.Request, userID uuid.UUID, email string) {
	access, expAccess, err := utils.GenerateToken(userID, email, h.cfg.AccessSecret, h.cfg.AccessTTL)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "token error")
		return
	}

	refresh, expRefresh, err := utils.GenerateToken(userID, email, h.cfg.RefreshSecret, h.cfg.RefreshTTL)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "token error")
		return
	}

	if err := h.Store.SaveRefreshToken(r.Context(), userID, refresh, time.Unix(expRefresh, 0)); err != nil {
		h.log.Error("save refresh token", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, tokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expAccess,
	})
}

// ---------------- REFRESH ---------------------

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	claims, err := utils.VerifyToken(req.RefreshToken, h.cfg.RefreshSecret)
	if err != nil {
		utils.JSONError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	valid, err := h.Store.RefreshTokenValid(r.Context(), req.RefreshToken, claims.UserID(), time.Now())
	if err != nil || !valid {
		utils.JSONError(w, http.StatusUnauthorized, "refresh token expired or invalid")
		return
	}

	// rotate: the presented token is spent either way
	if err := h.Store.DeleteRefreshToken(r.Context(), req.RefreshToken); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	h.issueTokens(w, r, claims.UserID(), claims.Email)
}

// -------------- LOGOUT -----------------------

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.Store.DeleteRefreshToken(r.Context(), req.RefreshToken); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// -------------- ME (protected) ----------------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := r.Context().Value(utils.CtxUserIDKey).(uuid.UUID)
	if !ok || uid == uuid.Nil {
		utils.JSONError(w, http.StatusUnauthorized, "not authorized")
		return
	}

	user, err := h.Store.UserByID(r.Context(), uid)
	if errors.Is(err, store.ErrUserNotFound) {
		utils.JSONError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "db error")
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
