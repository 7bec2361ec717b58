package httpapi

import (
	"net/http"
	"time"

	"storefront-be/internal/auth"
	"storefront-be/internal/user"
)

type AuthHandler struct {
	users user.Service
}

func NewAuthHandler(users user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

type authResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req user.Credentials
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	token, u, err := h.users.Register(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	setAccessCookie(w, token)
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: u})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req user.Credentials
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	token, u, err := h.users.Login(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	setAccessCookie(w, token)
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: u})
}
