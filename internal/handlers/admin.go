package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/kitforge/kitforge/internal/auth"
)

// handleLoginPage serves the admin login page
func (h *Handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.templates.AdminLogin.Execute(w, nil)
}

// handleLogin validates the admin password and sets a session cookie
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	token, ok := h.Auth.Login(req.Password)
	if !ok {
		respondError(w, Unauthorized("Invalid password"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(auth.SessionExpiry),
	})
	respondOK(w, map[string]string{"status": "ok"})
}

// handleLogout clears the admin session
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Auth.Logout(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:    auth.CookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
	})
	respondOK(w, map[string]string{"status": "ok"})
}

// handleExportCSV streams the catalog as CSV for merchandising edits
func (h *Handlers) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="catalog.csv"`)

	// Headers are already written, so a mid-stream failure can only be
	// logged; the client sees a truncated file.
	if err := h.Export.WriteCSV(w); err != nil {
		log.Printf("CSV export failed: %v", err)
	}
}
