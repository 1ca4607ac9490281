// auth.go - Shared admin credential and stateless session cookies.
//
// The admin password from the environment is compared through a
// PBKDF2-SHA256 hash in constant time; sessions are HMAC-signed cookies
// so no server-side session state is needed.
package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

const (
	adminSalt        = "admin-salt"
	pbkdf2Iterations = 100000
)

// AuthConfig holds the single shared admin credential and cookie settings.
// Unit tests can construct this directly.
type AuthConfig struct {
	AdminUser     string
	AdminPass     string
	SessionSecret string
	SessionTTL    time.Duration
	CookieName    string
}

type sessionPayload struct {
	Sub string `json:"sub"`
	Exp int64  `json:"exp"`
}

func (a AuthConfig) cookieName() string {
	if a.CookieName == "" {
		return "sri_session"
	}
	return a.CookieName
}

func (a AuthConfig) ttl() time.Duration {
	if a.SessionTTL <= 0 {
		return 12 * time.Hour
	}
	return a.SessionTTL
}

func (a AuthConfig) secretBytes() []byte {
	return []byte(a.SessionSecret)
}

func adminHash(password string) []byte {
	return pbkdf2.Key([]byte(password), []byte(adminSalt), pbkdf2Iterations, 32, sha256.New)
}

// verifyAdminPassword checks the shared credential in constant time.
func (a AuthConfig) verifyAdminPassword(username, password string) bool {
	if username != a.AdminUser {
		return false
	}
	return hmac.Equal(adminHash(password), adminHash(a.AdminPass))
}

func signPayload(secret []byte, msg string) string {
	m := hmac.New(sha256.New, secret)
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

func encodeSession(p sessionPayload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func decodeSession(token string) (sessionPayload, error) {
	var p sessionPayload
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, err
	}
	return p, nil
}

// makeToken returns "payload.signature"
func (a AuthConfig) makeToken(sub string) (string, time.Time, error) {
	exp := time.Now().Add(a.ttl())
	p := sessionPayload{Sub: sub, Exp: exp.Unix()}
	payload, err := encodeSession(p)
	if err != nil {
		return "", time.Time{}, err
	}
	sig := signPayload(a.secretBytes(), payload)
	return payload + "." + sig, exp, nil
}

func (a AuthConfig) verifyToken(tok string) (sessionPayload, error) {
	var p sessionPayload
	parts := strings.Split(tok, ".")
	if len(parts) != 2 {
		return p, errors.New("invalid token format")
	}
	payload := parts[0]
	sig := parts[1]
	want := signPayload(a.secretBytes(), payload)
	if !hmac.Equal([]byte(sig), []byte(want)) {
		return p, errors.New("invalid signature")
	}
	decoded, err := decodeSession(payload)
	if err != nil {
		return p, err
	}
	if decoded.Exp <= time.Now().Unix() {
		return p, errors.New("expired")
	}
	return decoded, nil
}

func (a AuthConfig) hasSession(r *http.Request) bool {
	c, err := r.Cookie(a.cookieName())
	if err != nil {
		return false
	}
	_, err = a.verifyToken(c.Value)
	return err == nil
}

// wantsJSON distinguishes API-style callers from browsers so authentication
// failures become a 401 body instead of a login redirect.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

// requireAuth gates the admin surfaces. Browsers are redirected to the
// login form; JSON callers get a 401 body.
func (a AuthConfig) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.hasSession(r) {
			if wantsJSON(r) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleAdminLogin serves the login form and processes the credential
// exchange. On success it issues a signed session cookie (HttpOnly,
// SameSite=Lax) and redirects to the dashboard.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderPage(w, http.StatusOK, adminLoginTmpl, loginPageData{})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		if !s.cfg.Auth.verifyAdminPassword(username, password) {
			s.metrics.RecordLoginAttempt(false)
			s.renderPage(w, http.StatusUnauthorized, adminLoginTmpl, loginPageData{Error: "Invalid credentials"})
			return
		}

		tok, exp, err := s.cfg.Auth.makeToken(username)
		if err != nil {
			s.logError("admin_login", err)
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		s.metrics.RecordLoginAttempt(true)

		http.SetCookie(w, &http.Cookie{
			Name:     s.cfg.Auth.cookieName(),
			Value:    tok,
			Path:     "/",
			Expires:  exp,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/admin", http.StatusFound)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleAdminLogout clears the session cookie and sends the operator back
// to the customer-facing page.
func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Auth.cookieName(),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/recording", http.StatusFound)
}
