// Package http provides the HTTP handlers of the counter service: the
// JSON API for login and transactions, and the HTML pages.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/merchco/counterpos/internal/models"
	"github.com/merchco/counterpos/internal/service"
	"github.com/merchco/counterpos/internal/session"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Login validates account/password and returns the session identity.
	Login(ctx context.Context, account, password string) (models.Session, error)
}

// AuthHandler handles login, logout, and login-state requests.
type AuthHandler struct {
	// AuthService performs the credential check.
	AuthService AuthService
	// Sessions issues and clears the session cookie.
	Sessions *session.Manager
}

// LoginRequest represents the JSON payload of a login attempt.
type LoginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// Login handles POST /api/login. On an exact credential match it sets
// the session cookie and returns the staff display name. A mismatch is
// answered with HTTP 200 and status "fail" — clients branch on the
// status field, not the HTTP code.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status":  "fail",
			"message": "invalid request",
		})
		return
	}

	sess, err := h.AuthService.Login(r.Context(), req.Account, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			writeJSON(w, http.StatusOK, map[string]string{
				"status":  "fail",
				"message": err.Error(),
			})
			return
		}
		writeError(w, err)
		return
	}

	if err := h.Sessions.SetCookie(w, sess); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "success",
		"name":   sess.Name,
	})
}

// Logout handles POST /api/logout. It clears the session cookie
// unconditionally.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.ClearCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// CheckLogin handles GET /api/check-login. It reflects the current
// session state without side effects.
func (h *AuthHandler) CheckLogin(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.FromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"logged_in": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"logged_in": true,
		"account":   sess.Account,
		"name":      sess.Name,
	})
}
