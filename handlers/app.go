// app.go - Shared handler state and rendering helpers

package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-ebook-store/checkout"
	"go-ebook-store/database"
	"go-ebook-store/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// App holds the collaborators every handler orchestrates. Handlers own no state.
type App struct {
	Catalog   *database.Catalog
	Accounts  *database.Accounts
	Purchases *database.Purchases
	Checkout  *checkout.Service
}

var templateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("2006-01-02 15:04") },
}

// loadTemplates parses the embedded page templates.
func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}

// render executes a page template with the session header data and pending flashes.
func (a *App) render(c *gin.Context, status int, name string, data gin.H) {
	sess := middleware.Current(c)
	if data == nil {
		data = gin.H{}
	}
	data["Session"] = sess
	data["CartCount"] = sess.Cart.Len()
	data["Flashes"] = sess.PopFlashes()
	c.HTML(status, name, data)
}

func (a *App) notFound(c *gin.Context) {
	a.render(c, http.StatusNotFound, "not_found.html", nil)
}

func (a *App) serverError(c *gin.Context, err error) {
	slog.Error("request failed", "path", c.Request.URL.Path, "err", err)
	a.render(c, http.StatusInternalServerError, "error.html", nil)
}

// bookID parses the :id path parameter.
func bookID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// backTo returns the local path of the Referer, or fallback.
func backTo(c *gin.Context, fallback string) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || !localPath(ref.Path) {
		return fallback
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

// localPath reports whether p is an absolute path on this host. "//host" and
// "/\host" are read by browsers as another origin.
func localPath(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	return len(p) == 1 || (p[1] != '/' && p[1] != '\\')
}
