// user_test.go - Tests for registration, login and logout
// Run with: go test ./...

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go-ebook-store/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegisterAndLogin tests user registration and login
func TestRegisterAndLogin(t *testing.T) {
	env := setupTestApp(t) // Prepare test DB and router

	// --- Test registration ---
	w := env.post("/register", url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "password": {"testpass"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = env.get("/login")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), msgRegistered)

	// --- Test login ---
	w = env.post("/login", url.Values{"email": {"ana@example.com"}, "password": {"testpass"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/library", w.Header().Get("Location"))

	w = env.get("/library")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hello, Ana")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestApp(t)
	form := url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "password": {"testpass"}}
	require.Equal(t, "/login", env.post("/register", form).Header().Get("Location"))

	w := env.post("/register", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register", w.Header().Get("Location"))
	assert.Contains(t, env.get("/register").Body.String(), msgEmailTaken)

	count, err := env.accounts.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count) // Store unchanged by the rejected attempt
}

func TestRegisterIncompleteForm(t *testing.T) {
	env := setupTestApp(t)

	w := env.post("/register", url.Values{"name": {"Ana"}, "email": {"not-an-email"}, "password": {"x"}})
	assert.Equal(t, "/register", w.Header().Get("Location"))
	assert.Contains(t, env.get("/register").Body.String(), msgRegisterIncomplete)
}

// TestLoginFailuresShareMessage checks wrong password and unknown e-mail look identical
func TestLoginFailuresShareMessage(t *testing.T) {
	env := setupTestApp(t)
	env.post("/register", url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "password": {"testpass"}})
	env.get("/login") // consume the registration notice

	// --- Test login with wrong password ---
	w := env.post("/login", url.Values{"email": {"ana@example.com"}, "password": {"wrongpass"}})
	assert.Equal(t, "/login", w.Header().Get("Location"))
	wrongPassword := env.get("/login").Body.String()

	// --- Test login with unknown e-mail ---
	w = env.post("/login", url.Values{"email": {"bob@example.com"}, "password": {"testpass"}})
	assert.Equal(t, "/login", w.Header().Get("Location"))
	unknownEmail := env.get("/login").Body.String()

	assert.Contains(t, wrongPassword, msgInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestLogoutDiscardsSession(t *testing.T) {
	env := setupTestApp(t)
	env.registerAndLogin("Ana", "ana@example.com", "testpass")
	env.post("/cart/add/1", nil)

	w := env.get("/logout")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	body := env.get("/").Body.String()
	assert.Contains(t, body, msgLoggedOut)
	assert.Contains(t, body, "Cart (0)")
	assert.NotContains(t, body, "Hello, Ana")

	w = env.get("/library")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRegisterOverlongPassword(t *testing.T) {
	env := setupTestApp(t)

	w := env.post("/register", url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "password": {strings.Repeat("p", 80)}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register", w.Header().Get("Location"))
	assert.Contains(t, env.get("/register").Body.String(), msgPasswordTooLong)

	count, err := env.accounts.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

// TestLoginRenewsSessionCookie checks a cookie handed out before login stops working after it
func TestLoginRenewsSessionCookie(t *testing.T) {
	env := setupTestApp(t)
	env.post("/cart/add/2", nil)
	before := *env.cookies[session.CookieName]

	env.registerAndLogin("Ana", "ana@example.com", "testpass")
	after := env.cookies[session.CookieName]
	require.NotNil(t, after)
	assert.NotEqual(t, before.Value, after.Value)

	// The cart survived the renewal
	assert.Contains(t, env.get("/cart").Body.String(), "Cart (1)")

	// Replaying the pre-login cookie gives an anonymous visitor
	req := httptest.NewRequest(http.MethodGet, "/library", nil)
	req.AddCookie(&before)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
