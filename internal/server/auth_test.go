package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testAuth() AuthConfig {
	return AuthConfig{
		AdminUser:     "admin",
		AdminPass:     "correct horse battery staple",
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
	}
}

func TestMakeAndVerifyToken(t *testing.T) {
	a := testAuth()

	tok, exp, err := a.makeToken("admin")
	if err != nil {
		t.Fatalf("makeToken: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry in the past: %v", exp)
	}
	if !strings.Contains(tok, ".") {
		t.Fatalf("token missing signature separator: %q", tok)
	}

	p, err := a.verifyToken(tok)
	if err != nil {
		t.Fatalf("verifyToken: %v", err)
	}
	if p.Sub != "admin" {
		t.Fatalf("sub = %q, want admin", p.Sub)
	}
}

func TestVerifyTokenRejectsTamperedSignature(t *testing.T) {
	a := testAuth()

	tok, _, err := a.makeToken("admin")
	if err != nil {
		t.Fatalf("makeToken: %v", err)
	}

	if _, err := a.verifyToken(tok + "ff"); err == nil {
		t.Fatal("tampered token verified")
	}

	other := testAuth()
	other.SessionSecret = "different-secret"
	if _, err := other.verifyToken(tok); err == nil {
		t.Fatal("token verified under wrong secret")
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	a := testAuth()

	p := sessionPayload{Sub: "admin", Exp: time.Now().Add(-time.Minute).Unix()}
	payload, err := encodeSession(p)
	if err != nil {
		t.Fatalf("encodeSession: %v", err)
	}
	tok := payload + "." + signPayload(a.secretBytes(), payload)

	if _, err := a.verifyToken(tok); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestVerifyAdminPassword(t *testing.T) {
	a := testAuth()

	if !a.verifyAdminPassword("admin", "correct horse battery staple") {
		t.Fatal("valid credentials rejected")
	}
	if a.verifyAdminPassword("admin", "wrong") {
		t.Fatal("wrong password accepted")
	}
	if a.verifyAdminPassword("root", "correct horse battery staple") {
		t.Fatal("wrong username accepted")
	}
}

func TestRequireAuthRedirectsBrowsers(t *testing.T) {
	a := testAuth()
	h := a.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Fatalf("redirect location = %q", loc)
	}
}

func TestRequireAuthReturnsJSONForAPICallers(t *testing.T) {
	a := testAuth()
	h := a.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestRequireAuthAdmitsValidSession(t *testing.T) {
	a := testAuth()
	h := a.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tok, _, err := a.makeToken("admin")
	if err != nil {
		t.Fatalf("makeToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: a.cookieName(), Value: tok})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
