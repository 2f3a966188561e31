// catalog.go - Browsing, search and preview pages

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go-ebook-store/database"
	"go-ebook-store/middleware"
	"go-ebook-store/session"

	"github.com/gin-gonic/gin"
)

// Index lists every book in the catalog.
func (a *App) Index(c *gin.Context) {
	books, err := a.Catalog.All(c.Request.Context())
	if err != nil {
		a.serverError(c, err)
		return
	}
	a.render(c, http.StatusOK, "index.html", gin.H{"Books": books})
}

// Search matches ?q= against titles and authors.
func (a *App) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		middleware.Current(c).AddFlash(session.FlashInfo, "Type something to search.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	books, err := a.Catalog.Search(c.Request.Context(), term)
	if err != nil {
		a.serverError(c, err)
		return
	}
	a.render(c, http.StatusOK, "search.html", gin.H{"Books": books, "Term": term})
}

// Preview shows a book's free preview text.
func (a *App) Preview(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		a.notFound(c)
		return
	}
	book, err := a.Catalog.Find(c.Request.Context(), id)
	if errors.Is(err, database.ErrBookNotFound) {
		a.notFound(c)
		return
	}
	if err != nil {
		a.serverError(c, err)
		return
	}
	a.render(c, http.StatusOK, "preview.html", gin.H{"Book": book})
}

// Read is the gate in front of the full text: it prompts a purchase unless
// the logged-in visitor already owns the book.
func (a *App) Read(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		a.notFound(c)
		return
	}
	ctx := c.Request.Context()
	book, err := a.Catalog.Find(ctx, id)
	if errors.Is(err, database.ErrBookNotFound) {
		a.notFound(c)
		return
	}
	if err != nil {
		a.serverError(c, err)
		return
	}
	owned := false
	if sess := middleware.Current(c); sess.LoggedIn {
		if owned, err = a.Purchases.Owns(ctx, sess.UserID, book.ID); err != nil {
			a.serverError(c, err)
			return
		}
	}
	a.render(c, http.StatusOK, "read.html", gin.H{"Book": book, "Owned": owned})
}
