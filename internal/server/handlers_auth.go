package server

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/niveshlab/nivesh/internal/models"
)

// handleAuthLogin handles POST /api/auth/login. Exactly one configured
// credential pair is valid. A successful login returns an unsigned
// base64("email:<unix-millis>") token; this is a session placeholder for a
// single-user dashboard, not a security boundary.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(s.app.Config.Auth.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.app.Config.Auth.Password)) == 1
	if !emailOK || !passOK {
		WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	now := time.Now()
	token := base64.StdEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%s:%d", req.Email, now.UnixMilli())))

	user := models.User{
		Email:     req.Email,
		ClientID:  s.app.Config.Refresh.ClientID,
		LastLogin: now.UTC(),
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    user,
	})
}
