// helpers_test.go - Shared test environment for the HTTP handlers

package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-ebook-store/checkout"
	"go-ebook-store/database"
	"go-ebook-store/events"
	"go-ebook-store/mailer"
	"go-ebook-store/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv is a seeded storefront plus a browser-like cookie jar
type testEnv struct {
	t         *testing.T
	router    *gin.Engine
	db        *gorm.DB
	purchases *database.Purchases
	accounts  *database.Accounts
	cookies   map[string]*http.Cookie
}

// setupTestApp opens a fresh SQLite file, seeds it and builds the router
func setupTestApp(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	var seeder database.Seeder
	_, err = seeder.Seed(context.Background(), db)
	require.NoError(t, err)

	catalog := database.NewCatalog(db)
	purchases := database.NewPurchases(db)
	accounts := database.NewAccounts(db)
	app := &App{
		Catalog:   catalog,
		Accounts:  accounts,
		Purchases: purchases,
		Checkout: &checkout.Service{
			Catalog:  catalog,
			Recorder: purchases,
			Notifier: mailer.New(mailer.Config{}), // unconfigured: never dials out
			Events:   events.Nop{},
			EbookDir: t.TempDir(),
		},
	}
	router := NewRouter(app, RouterConfig{
		Sessions: session.NewMemoryStore(time.Hour),
		Codec:    session.NewCodec("test-secret", time.Hour),
	})
	return &testEnv{
		t:         t,
		router:    router,
		db:        db,
		purchases: purchases,
		accounts:  accounts,
		cookies:   map[string]*http.Cookie{},
	}
}

// do builds a request with an optional urlencoded form and sends it
func (e *testEnv) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return e.send(req)
}

// send serves req with the stored cookies and remembers new ones
func (e *testEnv) send(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		e.cookies[c.Name] = c
	}
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, path, nil)
}

func (e *testEnv) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return e.do(http.MethodPost, path, form)
}

// registerAndLogin creates an account and logs it in
func (e *testEnv) registerAndLogin(name, email, password string) {
	e.t.Helper()
	w := e.post("/register", url.Values{"name": {name}, "email": {email}, "password": {password}})
	require.Equal(e.t, http.StatusSeeOther, w.Code)
	w = e.post("/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(e.t, http.StatusSeeOther, w.Code)
	require.Equal(e.t, "/library", w.Header().Get("Location"))
}
