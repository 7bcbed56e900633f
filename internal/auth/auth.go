package auth

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	CookieName    = "kitforge_session"
	SessionExpiry = 24 * time.Hour
)

// Shop-themed words for password generation
var forgeWords = []string{
	"forge", "anvil", "barrel", "brake", "sleeve",
	"nitride", "thread", "crown", "hider", "baffle",
	"steel", "titan", "spanner", "gauge", "jig",
	"lathe", "mandrel", "taper",
}

// Auth handles admin authentication
type Auth struct {
	password string
	sessions map[string]time.Time
	mu       sync.RWMutex
}

// New creates a new Auth instance with the given password
func New(password string) *Auth {
	return &Auth{
		password: password,
		sessions: make(map[string]time.Time),
	}
}

// GeneratePassword creates a random 3-word password
func GeneratePassword() string {
	words := make([]string, 3)
	for i := range words {
		words[i] = forgeWords[randomInt(len(forgeWords))]
	}
	return strings.Join(words, "-")
}

// Login validates the password and returns a session token if valid
func (a *Auth) Login(password string) (string, bool) {
	if password != a.password {
		return "", false
	}

	token := generateToken()
	a.mu.Lock()
	a.sessions[token] = time.Now().Add(SessionExpiry)
	a.mu.Unlock()

	return token, true
}

// Logout invalidates a session token
func (a *Auth) Logout(token string) {
	a.mu.Lock()
	delete(a.sessions, token)
	a.mu.Unlock()
}

// ValidateSession checks if a session token is valid
func (a *Auth) ValidateSession(token string) bool {
	a.mu.RLock()
	expiry, exists := a.sessions[token]
	a.mu.RUnlock()

	if !exists {
		return false
	}

	if time.Now().After(expiry) {
		a.mu.Lock()
		delete(a.sessions, token)
		a.mu.Unlock()
		return false
	}

	return true
}

// GetSessionFromRequest extracts and validates the session from a request
func (a *Auth) GetSessionFromRequest(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return a.ValidateSession(cookie.Value)
}

// RequireAuth middleware for admin pages (redirects to login)
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.GetSessionFromRequest(r) {
			next.ServeHTTP(w, r)
			return
		}
		http.Redirect(w, r, "/admin/login", http.StatusFound)
	})
}

// RequireAuthAPI middleware for API endpoints (returns 401)
func (a *Auth) RequireAuthAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.GetSessionFromRequest(r) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"UNAUTHORIZED","error":"Unauthorized - please log in"}`))
	})
}

// generateToken creates a random session token
func generateToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// randomInt returns a uniform random int in [0, max)
func randomInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}
